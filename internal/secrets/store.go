package secrets

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	derrors "github.com/igor47/dcsm/internal/errors"
)

// Load decrypts the secret store and parses the plaintext into a flat
// name-to-value mapping. The mapping is rebuilt fresh on every invocation;
// nothing is cached across runs and the plaintext never touches disk.
func Load(keyPath, secretsPath string, cipher Cipher) (map[string]string, error) {
	plaintext, err := cipher.Decrypt(keyPath, secretsPath)
	if err != nil {
		return nil, err
	}
	return ParseMapping(plaintext, secretsPath)
}

// ParseMapping parses decrypted plaintext as a flat YAML document of
// name: value records. Duplicate keys, nested structures, null values, and
// keys that are not valid placeholder identifiers are all rejected; scalar
// non-string values are coerced to their textual form.
func ParseMapping(plaintext []byte, secretsPath string) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.UnmarshalWithOptions(plaintext, &raw, yaml.Strict()); err != nil {
		return nil, &derrors.DecryptionError{
			Path:   secretsPath,
			Reason: "decrypted content is not a flat mapping",
			Err:    err,
		}
	}
	if raw == nil {
		return nil, &derrors.DecryptionError{
			Path:   secretsPath,
			Reason: "decrypted content is empty, expected a mapping",
		}
	}

	mapping := make(map[string]string, len(raw))
	for key, value := range raw {
		if key == "" || strings.TrimSpace(key) != key {
			return nil, &derrors.DecryptionError{
				Path:   secretsPath,
				Reason: fmt.Sprintf("secret key %q is not a valid identifier", key),
			}
		}

		text, err := coerceValue(value)
		if err != nil {
			return nil, &derrors.DecryptionError{
				Path:   secretsPath,
				Reason: fmt.Sprintf("secret %q %v", key, err),
			}
		}
		mapping[key] = text
	}

	return mapping, nil
}

// coerceValue turns a YAML scalar into its textual form. Structured values
// mean the document is not flat.
func coerceValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("has a null value")
	case map[string]interface{}, map[interface{}]interface{}, []interface{}:
		return "", fmt.Errorf("has a nested value, the store must be a flat mapping")
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
