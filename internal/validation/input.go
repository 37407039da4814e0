package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Константы валидации
const (
	MinUsernameLength     = 3
	MaxUsernameLength     = 30
	MinNameLength         = 2
	MaxNameLength         = 100
	MaxBioLength          = 1000
	MaxLocationLength     = 100
	MaxAvailabilityLength = 200
	MaxSkillLength        = 50
	MaxSkillsCount        = 50
	MinRating             = 1
	MaxRating             = 5
	MinFeedbackTextLength = 1
	MaxFeedbackTextLength = 2000
	MinBadgeLevel         = 1
	MaxBadgeLevel         = 5
	MaxSwapMessageLength  = 1000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая после обрезки пробелов.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateName проверяет отображаемое имя профиля.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("имя обязательно")
	}

	name = strings.TrimSpace(name)

	if err := ValidateLength("имя", name, MinNameLength, MaxNameLength); err != nil {
		return err
	}

	return nil
}

// ValidateBio проверяет биографию.
func ValidateBio(bio *string) error {
	if bio != nil && *bio != "" {
		bioStr := strings.TrimSpace(*bio)
		if err := ValidateLength("биография", bioStr, 0, MaxBioLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		loc := strings.TrimSpace(*location)
		if err := ValidateLength("местоположение", loc, 0, MaxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAvailability проверяет описание доступности.
func ValidateAvailability(availability *string) error {
	if availability != nil && *availability != "" {
		av := strings.TrimSpace(*availability)
		if err := ValidateLength("доступность", av, 0, MaxAvailabilityLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSkills проверяет массив навыков. Ввод свободный, поэтому пустые
// строки отбрасываются, а не считаются ошибкой.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}

	for _, skill := range skills {
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("навык не может быть длиннее %d символов", MaxSkillLength)
		}
	}

	return nil
}

// NormalizeSkills обрезает пробелы и отбрасывает пустые строки, сохраняя порядок ввода.
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		normalized = append(normalized, skill)
	}
	return normalized
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("рейтинг должен быть от %d до %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateFeedbackText проверяет текст отзыва.
func ValidateFeedbackText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("текст отзыва не может быть пустым")
	}

	if err := ValidateLength("текст отзыва", text, MinFeedbackTextLength, MaxFeedbackTextLength); err != nil {
		return err
	}

	return nil
}

// ValidateBadgeLevel проверяет уровень значка.
func ValidateBadgeLevel(level int) error {
	if level < MinBadgeLevel || level > MaxBadgeLevel {
		return fmt.Errorf("уровень значка должен быть от %d до %d", MinBadgeLevel, MaxBadgeLevel)
	}
	return nil
}

// ValidateSwapMessage проверяет сопроводительное сообщение обмена.
func ValidateSwapMessage(message *string) error {
	if message != nil && *message != "" {
		msg := strings.TrimSpace(*message)
		if err := ValidateLength("сообщение", msg, 0, MaxSwapMessageLength); err != nil {
			return err
		}
	}
	return nil
}
