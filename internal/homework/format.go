package homework

import "fmt"

// ParseStatus formats a single homework record as a status-change message.
func ParseStatus(record any) (string, error) {
	obj, ok := record.(map[string]any)
	if !ok {
		return "", &MissingFieldError{Field: "homework_name"}
	}
	name, ok := obj["homework_name"].(string)
	if !ok {
		return "", &MissingFieldError{Field: "homework_name"}
	}
	status, ok := obj["status"].(string)
	if !ok {
		return "", &MissingFieldError{Field: "status"}
	}

	verdict, ok := Verdict(status)
	if !ok {
		return "", &UnknownStatusError{Status: status}
	}
	return fmt.Sprintf(`Изменился статус проверки работы "%s". %s`, name, verdict), nil
}
