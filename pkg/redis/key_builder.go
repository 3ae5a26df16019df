package redis

import "fmt"

// Key patterns
const (
	KeySessionResults = "results:%s"            // results:{sessionID}
	KeyCompanyResults = "results:%s:company:%s" // results:{sessionID}:company:{companyID}
	KeyVotingSummary  = "voting:summary:%s"     // voting:summary:{companyID}
	KeyAdminToken     = "admin:token:%s"        // admin:token:{token}
)

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeySessionResults(sessionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeySessionResults, sessionID))
}

func (kb *KeyBuilder) KeyCompanyResults(sessionID, companyID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCompanyResults, sessionID, companyID))
}

func (kb *KeyBuilder) KeyVotingSummary(companyID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVotingSummary, companyID))
}

func (kb *KeyBuilder) KeyAdminToken(token string) string {
	return kb.BuildKey(fmt.Sprintf(KeyAdminToken, token))
}

// KeyCustom builds a key from an arbitrary pattern
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(pattern, args...))
}
