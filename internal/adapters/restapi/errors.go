package restapi

import "encoding/json"

// errorBody is the error envelope the backend sends with non-2xx responses.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

// errorMessage extracts the "error" field. A string is returned as is; any
// other JSON value (object, list) is returned in its compact encoding.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Error, &s); err == nil {
		return s
	}
	if string(eb.Error) == "null" {
		return ""
	}
	return string(eb.Error)
}
