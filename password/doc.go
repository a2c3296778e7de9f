// Package password provides one-way hashing and verification of plaintext
// passwords using bcrypt with a fixed work factor.
package password
