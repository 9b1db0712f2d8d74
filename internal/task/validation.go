package task

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 65535
	MaxCoverBytes        = 2 << 20
)

// ValidationErrors maps a form field to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ParseBool accepts the representations HTML forms and JS clients send.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off", "no":
		return false, nil
	case "1", "true", "on", "yes":
		return true, nil
	}
	return strconv.ParseBool(raw)
}

func coverTooLarge() string {
	return fmt.Sprintf("The cover field must not be greater than %d kilobytes.", MaxCoverBytes>>10)
}

func ValidateUpsert(dto UpsertTaskDTO) ValidationErrors {
	errs := ValidationErrors{}

	title := strings.TrimSpace(dto.Title)
	switch {
	case title == "":
		errs["title"] = "The title field is required."
	case utf8.RuneCountInString(title) > MaxTitleLength:
		errs["title"] = fmt.Sprintf("The title field must not be greater than %d characters.", MaxTitleLength)
	}

	if len(dto.Description) > MaxDescriptionLength {
		errs["description"] = "The description field is too long."
	}

	if c := dto.Cover; c != nil {
		switch {
		case !strings.HasPrefix(c.ContentType, "image/"):
			errs["cover"] = "The cover field must be an image."
		case c.Size > MaxCoverBytes:
			errs["cover"] = coverTooLarge()
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
