// Package store defines the token stores used by the OAuth2 transport.
//
// The in-memory store keeps tokens for the life of the process; FileStore also
// writes them to a JSON file (mode 0600) so that a restarted bridge does not have
// to go through the browser login again.
package store
