package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"firebase": map[string]any{
			"databaseUrl": "",
			"projectId":   "",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"status": map[string]any{
			"pollInterval": "5s",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "FIREBASE_DATABASEURL", want: "firebase.databaseUrl"},
		{envKey: "FIREBASE_PROJECTID", want: "firebase.projectId"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "STATUS_POLLINTERVAL", want: "status.pollInterval"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestConfigValidate_RequiresFirebaseSection(t *testing.T) {
	cfg := &Config{}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for missing firebase section")
	}

	cfg.Firebase = &FirebaseConfig{ProjectID: "pet-feeder", DatabaseURL: "https://pet-feeder.firebaseio.com"}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for missing credentials path")
	}

	cfg.Firebase.CredentialsPath = "service-account.json"
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
