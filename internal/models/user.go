package models

// User holds the stored credentials of a registered user.
// Both fields are base64 text as written to the database file.
type User struct {
	Hash string `json:"hash"` // base64(SHA-256(password || salt))
	Salt string `json:"salt"` // base64 of the random salt bytes
}
