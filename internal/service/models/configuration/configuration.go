package configuration

// Configuration is a named storefront setting.
type Configuration struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}
