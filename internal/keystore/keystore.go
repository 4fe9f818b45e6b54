// Package keystore stores provider API keys in a plain key=value file
// under the user config directory, kept out of config.toml so the config
// file can be shared or committed without leaking credentials.
package keystore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Keystore reads and writes a single secrets file. Every operation
// re-reads the file, so concurrent processes see each other's writes.
type Keystore struct {
	path string
}

// New returns a keystore backed by the given file path.
func New(path string) *Keystore {
	return &Keystore{path: path}
}

// DefaultPath returns the standard secrets file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("keystore: resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "bitiacora", ".secrets"), nil
}

// Load returns the stored value for name. A missing file or missing key
// is absence, not an error.
func (k *Keystore) Load(name string) (string, bool, error) {
	values, err := k.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[name]
	return v, ok, nil
}

// Save writes the value for name, creating the file with 0600 permissions
// if it does not exist.
func (k *Keystore) Save(name, value string) error {
	if name == "" {
		return fmt.Errorf("keystore: empty key name")
	}
	values, err := k.read()
	if err != nil {
		return err
	}
	values[name] = value
	return k.write(values)
}

// Delete removes the entry for name. Deleting an absent key is a no-op.
func (k *Keystore) Delete(name string) error {
	values, err := k.read()
	if err != nil {
		return err
	}
	if _, ok := values[name]; !ok {
		return nil
	}
	delete(values, name)
	return k.write(values)
}

func (k *Keystore) read() (map[string]string, error) {
	values := make(map[string]string)

	file, err := os.Open(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("keystore: open: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			values[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("keystore: read: %w", err)
	}
	return values, nil
}

func (k *Keystore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("keystore: create dir: %w", err)
	}

	keys := make([]string, 0, len(values))
	for name := range values {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, name := range keys {
		fmt.Fprintf(&b, "%s=%s\n", name, values[name])
	}
	if err := os.WriteFile(k.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("keystore: write: %w", err)
	}
	return nil
}
