package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/todoadd/internal/core/deadline"
	"github.com/hay-kot/todoadd/internal/core/styles"
	"github.com/hay-kot/todoadd/internal/core/validate"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("deadline_format", c.DeadlineFormat, deadline.ValidateFormat),
		criterio.Run("backup_suffix", c.BackupSuffix, validateBackupSuffix),
		criterio.Run("done_file", c.DoneFile, validateDoneFile),
		criterio.Run("theme", c.Theme, validateTheme),
		c.validateSearchPaths(),
		c.validateSuggestions(),
		c.validateDefaultTags(),
	)
}

func validateBackupSuffix(suffix string) error {
	if strings.TrimSpace(suffix) == "" {
		return fmt.Errorf("cannot be empty")
	}
	if strings.ContainsRune(suffix, filepath.Separator) {
		return fmt.Errorf("must not contain a path separator")
	}
	return nil
}

// validateDoneFile requires a bare file name; the done file always lives
// next to the todo file.
func validateDoneFile(name string) error {
	if name == "" {
		return fmt.Errorf("cannot be empty")
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("%q must be a file name, not a path", name)
	}
	return nil
}

func validateTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

// validateSearchPaths rejects blank entries.
func (c *Config) validateSearchPaths() error {
	var errs criterio.FieldErrorsBuilder
	for i, path := range c.SearchPaths {
		if strings.TrimSpace(path) == "" {
			errs = errs.Append(fmt.Sprintf("search_paths[%d]", i), fmt.Errorf("cannot be empty"))
		}
	}
	return errs.ToError()
}

func (c *Config) validateSuggestions() error {
	if c.Suggestions < 0 {
		return criterio.NewFieldErrors("suggestions", fmt.Errorf("must be zero or greater"))
	}
	return nil
}

func (c *Config) validateDefaultTags() error {
	if strings.TrimSpace(c.DefaultTags) == "" {
		return nil
	}
	return validate.ProjectTagsField("default_tags", c.DefaultTags)
}
