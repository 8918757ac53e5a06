package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/skilltrack/internal/logger"
	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
	"github.com/julianstephens/skilltrack/internal/utils"
)

// Context carries the shared dependencies into every command's Run.
type Context struct {
	Store storage.Provider
}

// Location resolves the user's configured timezone, falling back to the
// system timezone when settings are unavailable or invalid.
func (c *Context) Location() *time.Location {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Local
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using system timezone", "timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// Today returns today's date string in the user's configured timezone.
func (c *Context) Today() string {
	return time.Now().In(c.Location()).Format("2006-01-02")
}

// ResolveSkill looks a skill up by name first, then by ID, so commands accept
// either form.
func (c *Context) ResolveSkill(ref string) (models.Skill, error) {
	skill, err := c.Store.GetSkillByName(ref)
	if err == nil {
		return skill, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Skill{}, err
	}

	skill, err = c.Store.GetSkill(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Skill{}, fmt.Errorf("skill %q not found", ref)
	}
	return skill, err
}
