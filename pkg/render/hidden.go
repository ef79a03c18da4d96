package render

// CSRFFieldName is the form field every state-changing form carries.
const CSRFFieldName = "_csrf"

// HiddenField is an <input type="hidden"> emitted into every form on the page.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CSRFToken wraps a session token as the hidden CSRF field.
func CSRFToken(token string) HiddenField {
	return HiddenField{Name: CSRFFieldName, Value: token}
}
