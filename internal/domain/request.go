package domain

// HTTPMethod represents an HTTP method (e.g., GET, POST).
type HTTPMethod string

const (
	MethodGet  HTTPMethod = "GET"
	MethodPost HTTPMethod = "POST"
)

// BodyType represents the type of payload for a request body.
type BodyType string

const (
	BodyNone BodyType = "none"
	BodyForm BodyType = "form"
)

// Headers is a map representation of HTTP headers.
type Headers map[string]string

// FormValues keeps field order and repeated names, the way a browser submits a form.
type FormValues []FormField

// FormField is a single name/value pair of a submitted form.
type FormField struct {
	Name  string
	Value string
}

// Set replaces every value of name with value, or appends it.
func (f FormValues) Set(name, value string) FormValues {
	out := make(FormValues, 0, len(f)+1)
	replaced := false
	for _, fld := range f {
		if fld.Name != name {
			out = append(out, fld)
			continue
		}
		if !replaced {
			out = append(out, FormField{Name: name, Value: value})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, FormField{Name: name, Value: value})
	}
	return out
}

// Get returns the first value of name.
func (f FormValues) Get(name string) (string, bool) {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// RequestSpec describes a single browser request.
type RequestSpec struct {
	Method  HTTPMethod
	URL     string
	Headers Headers
	Body    BodySpec
}

// BodySpec describes an HTTP request body.
type BodySpec struct {
	Type BodyType
	Form FormValues
}
