package models

// Session is the anonymous ledger identity. It carries nothing but the
// opaque cookie token; transactions are partitioned by it without any
// account row behind it. A Session never grants access to meal data.
type Session struct {
	Token string `json:"token"`
}
