package admin

// MintTokenRequest asks for a short-lived service token. Subject names
// the operator the token is issued to and shows up in audit logs.
type MintTokenRequest struct {
	Subject string `json:"subject"`
}

// ResetRequest clears one caller's budget for one endpoint class.
type ResetRequest struct {
	Identity string `json:"identity"`
	Class    string `json:"class"`
}
