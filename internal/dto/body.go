package dto

import "encoding/json"

// RawBody is a JSON object body whose fields are decoded one at a time, so a
// field of the wrong type does not reject the request before authorization.
type RawBody map[string]json.RawMessage

// String returns the string field key. A missing or null field reads as "".
// ok is false when the field holds anything other than a string.
func (b RawBody) String(key string) (value string, ok bool) {
	raw, present := b[key]
	if !present {
		return "", true
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

// IDs returns the string array field key. A missing or null field reads as
// nil. ok is false when the field is not an array of strings.
func (b RawBody) IDs(key string) (ids []string, ok bool) {
	raw, present := b[key]
	if !present {
		return nil, true
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// AssignTaskRequest reads the assign body. An employeeIds field of the wrong
// type reads as absent, which the task service rejects once ownership is
// established.
func (b RawBody) AssignTaskRequest() AssignTaskRequest {
	ids, ok := b.IDs("employeeIds")
	if !ok {
		ids = nil
	}
	return AssignTaskRequest{EmployeeIDs: ids}
}

// UpdateTaskRequest reads the update body. The message is non-empty when a
// field has the wrong type and names the first such field.
func (b RawBody) UpdateTaskRequest() (req UpdateTaskRequest, malformed string) {
	var ok bool
	if req.Title, ok = b.String("title"); !ok {
		return UpdateTaskRequest{}, "Invalid title"
	}
	if req.Details, ok = b.String("details"); !ok {
		return UpdateTaskRequest{}, "Invalid details"
	}
	if req.Date, ok = b.String("date"); !ok {
		return UpdateTaskRequest{}, "Invalid date format"
	}
	if req.EmployeeIDs, ok = b.IDs("employeeIds"); !ok {
		return UpdateTaskRequest{}, "Invalid employee IDs in employeeIds array"
	}
	return req, ""
}
