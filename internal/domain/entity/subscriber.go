package entity

// Subscribers maps a visitor fingerprint to the email it registered.
type Subscribers map[string]string
