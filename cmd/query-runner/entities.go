package main

import "github.com/kailas-cloud/cyync-lookup/internal/domain"

// sampleEntities covers every entity type the lookup recognizes, plus free-text keywords.
var sampleEntities = []domain.Entity{
	// Network infrastructure
	{Value: "10.0.1.100", Types: []string{"IPv4"}},
	{Value: "192.168.1.1", Types: []string{"IPv4"}},
	{Value: "172.16.0.1", Types: []string{"IPv4"}},

	// Domains
	{Value: "example.com", Types: []string{"domain"}},
	{Value: "suspicious-domain.net", Types: []string{"domain"}},
	{Value: "malware-c2.org", Types: []string{"domain"}},

	// Email addresses
	{Value: "admin@company.com", Types: []string{"email"}},
	{Value: "security@example.org", Types: []string{"email"}},
	{Value: "analyst@cyync.com", Types: []string{"email"}},

	// MD5
	{Value: "f54a41145b732d47d4a2b0a1c6e811dd", Types: []string{"MD5"}},
	{Value: "1c405ba0dd99d9333173a8b44a98c6d0", Types: []string{"MD5"}},

	// SHA256
	{Value: "3c2fe308c0a563e06263bbacf793bbe9b2259d795fcc36b953793a7e499e7f71", Types: []string{"SHA256"}},
	{Value: "daa362f070ba121b9a2fa3567abc345edcde33c54cabefa71dd2faad78c10c33", Types: []string{"SHA256"}},

	// URLs
	{Value: "https://malicious-site.com/payload", Types: []string{"url"}},
	{Value: "http://suspicious-domain.net/login", Types: []string{"url"}},

	// Keywords likely to appear in asset names and form titles
	{Value: "malware", Types: []string{"keyword"}},
	{Value: "phishing", Types: []string{"keyword"}},
	{Value: "incident", Types: []string{"keyword"}},
	{Value: "vulnerability", Types: []string{"keyword"}},
}
