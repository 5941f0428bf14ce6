// Package session implements the Session Store: the single current
// authenticated identity and the account directory behind it.
//
// All durable state lives in the records repository under the
// current-session and account-directory keys. Every mutation is a
// read-modify-write-persist sequence executed under one mutex, so store
// operations are atomic with respect to each other within a process.
package session
