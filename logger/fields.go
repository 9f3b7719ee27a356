package logger

// Standard field key constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientID  = "client_id"
	FieldUserID    = "user_id"
	FieldResource  = "resource"
	FieldScope     = "scope"
	FieldGrantType = "grant_type"
	FieldError     = "error"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("token issued", logger.Fields(logger.FieldClientID, id))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(err error) map[string]interface{} {
	return map[string]interface{}{
		FieldError: err.Error(),
	}
}
