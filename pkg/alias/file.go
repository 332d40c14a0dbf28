package alias

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// DefaultFile is the curated alias file used when none is configured.
const DefaultFile = "author_alias.yaml"

var (
	// ErrCuratedExists is returned by WriteDraft when the target file exists
	// and force is not set.
	ErrCuratedExists = errors.New(errors.ErrCodeAliasFileExists, "curated alias file already exists")

	// ErrNoCuratedAliases is returned by LoadCuratedAliases when the file is
	// missing.
	ErrNoCuratedAliases = errors.New(errors.ErrCodeAliasNotCurated, "no curated alias file")
)

const draftHeader = `# Author aliases, keyed by roster last name.
#
# Each list holds the spellings that refer to that roster member. Delete any
# spelling that belongs to a different person with the same last name. Names
# that do not appear in a list are ignored when building the network.`

// WriteDraft writes candidates as an editable YAML document. Each spelling
// carries a comment with the number of records it appeared in. An existing
// file is only replaced when force is set.
func WriteDraft(path string, c Candidates, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrap(errors.ErrCodeAliasFileExists, ErrCuratedExists, "%s", path)
		}
	}

	data, err := yaml.Marshal(draftNode(c))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode aliases")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func draftNode(c Candidates) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, last := range c.Keys() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: last}
		list := &yaml.Node{Kind: yaml.SequenceNode}
		spellings := c[last]
		if len(spellings) == 0 {
			key.LineComment = "# not found in any record"
			list.Style = yaml.FlowStyle
		}
		for _, s := range spellings {
			list.Content = append(list.Content, &yaml.Node{
				Kind:        yaml.ScalarNode,
				Value:       s.Name,
				Style:       yaml.DoubleQuotedStyle,
				LineComment: recordsComment(s.Records),
			})
		}
		root.Content = append(root.Content, key, list)
	}
	return &yaml.Node{Kind: yaml.DocumentNode, HeadComment: draftHeader, Content: []*yaml.Node{root}}
}

func recordsComment(n int) string {
	if n == 1 {
		return "# 1 record"
	}
	return fmt.Sprintf("# %d records", n)
}

// Save writes curated aliases without comments, replacing path.
func Save(path string, a Aliases) error {
	data, err := yaml.Marshal(map[string][]string(a))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode aliases")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadCuratedAliases reads a curated alias file. It never builds one.
func LoadCuratedAliases(path string) (Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeAliasNotCurated, ErrNoCuratedAliases, "%s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAlias, err, "parse %s", path)
	}
	a := Aliases(raw)
	if a == nil {
		a = Aliases{}
	}
	for k, v := range a {
		if v == nil {
			a[k] = []string{}
		}
	}
	a.normalize()
	return a, nil
}
