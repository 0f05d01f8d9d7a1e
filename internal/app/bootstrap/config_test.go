package bootstrap

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoDatabase:       "stratajobs",
		SessionKey:          strings.Repeat("s", minSecretLength),
		CSRFKey:             strings.Repeat("c", minSecretLength),
		JobsPerPage:         3,
		EnforceJobOwnership: true,
		QueryTimeoutShort:   5 * time.Second,
		QueryTimeoutMedium:  10 * time.Second,
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid dev", env: "dev", mutate: func(*AppConfig) {}},
		{name: "valid prod", env: "prod", mutate: func(*AppConfig) {}},
		{
			name:    "missing database",
			env:     "dev",
			mutate:  func(c *AppConfig) { c.MongoDatabase = "  " },
			wantErr: "mongo_database",
		},
		{
			name:    "zero page size",
			env:     "dev",
			mutate:  func(c *AppConfig) { c.JobsPerPage = 0 },
			wantErr: "jobs_per_page",
		},
		{
			name:    "short session key in prod",
			env:     "prod",
			mutate:  func(c *AppConfig) { c.SessionKey = "short" },
			wantErr: "session_key",
		},
		{
			name:   "short session key in dev",
			env:    "dev",
			mutate: func(c *AppConfig) { c.SessionKey = "short"; c.CSRFKey = "short" },
		},
		{
			name:    "short csrf key in prod",
			env:     "prod",
			mutate:  func(c *AppConfig) { c.CSRFKey = "short" },
			wantErr: "csrf_key",
		},
		{
			name:    "negative timeout",
			env:     "dev",
			mutate:  func(c *AppConfig) { c.QueryTimeoutMedium = -time.Second },
			wantErr: "timeouts",
		},
		{
			name: "seed admin with weak password",
			env:  "dev",
			mutate: func(c *AppConfig) {
				c.SeedAdminEmail = "admin@example.com"
				c.SeedAdminPassword = "password"
			},
			wantErr: "seed_admin_password",
		},
		{
			name: "seed admin with good password",
			env:  "dev",
			mutate: func(c *AppConfig) {
				c.SeedAdminEmail = "admin@example.com"
				c.SeedAdminPassword = "correct horse battery"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(tt.env, cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAppConfig_ReportsEveryProblem(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoDatabase = ""
	cfg.JobsPerPage = -1

	err := validateAppConfig("dev", cfg)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"mongo_database", "jobs_per_page"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"https://a.example", []string{"https://a.example"}},
		{"https://a.example, https://b.example ,", []string{"https://a.example", "https://b.example"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
