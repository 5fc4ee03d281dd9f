package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.URL != "http://127.0.0.1:8000" {
		t.Errorf("expected default API URL, got %s", config.API.URL)
	}
	if config.API.ClientID != "" || config.API.ClientSecret != "" {
		t.Error("expected default credentials to be empty")
	}
	if config.Journal.Path != "" {
		t.Errorf("expected journal to be off by default, got path %s", config.Journal.Path)
	}
	if config.Journal.MaxOpenConns != 5 || config.Journal.MaxIdleConns != 2 {
		t.Errorf("unexpected journal pool defaults: %d/%d", config.Journal.MaxOpenConns, config.Journal.MaxIdleConns)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[api]
url = "https://ctms.example.com"
client_id = "id_test"
client_secret = "secret_test"

[journal]
path = "runs.db"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.API.URL != "https://ctms.example.com" {
			t.Errorf("unexpected API URL: %s", config.API.URL)
		}
		if config.API.ClientID != "id_test" {
			t.Errorf("unexpected client id: %s", config.API.ClientID)
		}
		if config.Journal.Path != "runs.db" {
			t.Errorf("unexpected journal path: %s", config.Journal.Path)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("invalid TOML fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[api\nurl ="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("created config should parse: %v", err)
	}
	if config.API.URL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected API URL in created config: %s", config.API.URL)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Run("environment overrides file values", func(t *testing.T) {
		t.Setenv("ctms_api_url", "https://env.example.com")
		t.Setenv("ctms_client_id", "id_env")
		t.Setenv("ctms_client_secret", "secret_env")
		t.Setenv("ctms_journal_path", "env.db")

		config := DefaultConfig()
		config.API.ClientID = "id_file"
		config.ApplyEnv()

		if config.API.URL != "https://env.example.com" {
			t.Errorf("expected env URL, got %s", config.API.URL)
		}
		if config.API.ClientID != "id_env" {
			t.Errorf("expected env client id, got %s", config.API.ClientID)
		}
		if config.API.ClientSecret != "secret_env" {
			t.Errorf("expected env client secret, got %s", config.API.ClientSecret)
		}
		if config.Journal.Path != "env.db" {
			t.Errorf("expected env journal path, got %s", config.Journal.Path)
		}
	})

	t.Run("uppercase names are recognized", func(t *testing.T) {
		t.Setenv("CTMS_CLIENT_ID", "id_upper")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.ClientID != "id_upper" {
			t.Errorf("expected uppercase env to apply, got %s", config.API.ClientID)
		}
	})

	t.Run("unset variables leave values alone", func(t *testing.T) {
		config := DefaultConfig()
		config.API.ClientID = "id_file"
		config.ApplyEnv()

		if config.API.ClientID != "id_file" {
			t.Errorf("expected file value to survive, got %s", config.API.ClientID)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		config := DefaultConfig()
		config.API.ClientID = "id_test"
		config.API.ClientSecret = "secret_test"
		return config
	}

	t.Run("complete config passes", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty URL fails", func(t *testing.T) {
		config := valid()
		config.API.URL = ""
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("missing client id fails", func(t *testing.T) {
		config := valid()
		config.API.ClientID = ""
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("missing client secret fails", func(t *testing.T) {
		config := valid()
		config.API.ClientSecret = ""
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
