package core

import "os"

// Prod reports whether bugit is running in a production environment.
// PROD takes precedence when set; otherwise a DEBUG=1 environment is
// treated as non-production.
func Prod() bool {
	if v, ok := os.LookupEnv("PROD"); ok {
		return v != "0"
	}
	return os.Getenv("DEBUG") != "1"
}

// InSnap reports whether the process is running inside a snap.
func InSnap() bool {
	_, ok := os.LookupEnv("SNAP")
	return ok
}
