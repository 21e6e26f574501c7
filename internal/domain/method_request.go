package domain

import "time"

var methodSchema = schema{
	{Name: "account", Required: false, Nullable: true, Kind: KindChar},
	{Name: "login", Required: true, Nullable: true, Kind: KindChar},
	{Name: "token", Required: true, Nullable: true, Kind: KindChar},
	{Name: "arguments", Required: true, Nullable: true, Kind: KindArguments},
	{Name: "method", Required: true, Nullable: false, Kind: KindChar},
}

// MethodRequest is the authenticated envelope wrapping every call.
// A nil pointer means the caller sent null or omitted an optional key.
type MethodRequest struct {
	Account   *string
	Login     *string
	Token     *string
	Arguments map[string]any
	Method    string
}

// ParseMethodRequest validates a decoded request body.
func ParseMethodRequest(body map[string]any) (*MethodRequest, error) {
	values, err := methodSchema.parse(body, time.Time{})
	if err != nil {
		return nil, err
	}

	req := &MethodRequest{
		Account: stringValue(values["account"]),
		Login:   stringValue(values["login"]),
		Token:   stringValue(values["token"]),
		Method:  values["method"].(string),
	}
	if args, ok := values["arguments"].(map[string]any); ok {
		req.Arguments = args
	}
	return req, nil
}

// IsAdmin reports whether the request was made with the admin login.
func (r *MethodRequest) IsAdmin(adminLogin string) bool {
	return r.Login != nil && *r.Login == adminLogin
}

// AccountOrEmpty returns the account, treating null as an empty string.
func (r *MethodRequest) AccountOrEmpty() string {
	if r.Account == nil {
		return ""
	}
	return *r.Account
}

// LoginOrEmpty returns the login, treating null as an empty string.
func (r *MethodRequest) LoginOrEmpty() string {
	if r.Login == nil {
		return ""
	}
	return *r.Login
}

// TokenOrEmpty returns the token, treating null as an empty string.
func (r *MethodRequest) TokenOrEmpty() string {
	if r.Token == nil {
		return ""
	}
	return *r.Token
}
