package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the caller's function name without the module path,
// e.g. "credentialservice.(*CredentialService).Register".
func GetFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	name := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	return name
}
