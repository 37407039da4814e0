package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
)

// DirectoryRepository описывает зависимости DirectoryService от слоя хранилища.
type DirectoryRepository interface {
	ListProfiles(ctx context.Context, excludeUserID uuid.UUID) ([]models.Profile, error)
}

// DirectoryService отвечает за каталог участников и его фильтрацию.
type DirectoryService struct {
	repo DirectoryRepository
}

// NewDirectoryService создаёт сервис каталога.
func NewDirectoryService(repo DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

// DirectoryFilter описывает три независимые оси фильтрации каталога.
// Пустое значение оси означает, что ось не ограничивает результат.
type DirectoryFilter struct {
	Search   string
	Skill    string
	Location string
}

// IsEmpty сообщает, ограничивает ли фильтр хоть одну ось.
func (f DirectoryFilter) IsEmpty() bool {
	return f.Search == "" && f.Skill == "" && f.Location == ""
}

// List возвращает отфильтрованный каталог участников. Собственный профиль
// зрителя и приватные профили исключаются до фильтрации.
func (s *DirectoryService) List(ctx context.Context, viewerID uuid.UUID, filter DirectoryFilter) ([]models.Profile, error) {
	profiles, err := s.repo.ListProfiles(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return FilterProfiles(profiles, filter), nil
}

// FilterProfiles применяет фильтр к списку профилей. Оси объединяются по И:
// профиль попадает в результат, только если проходит каждую непустую ось.
// Все сравнения регистронезависимые, по подстроке.
func FilterProfiles(profiles []models.Profile, filter DirectoryFilter) []models.Profile {
	if filter.IsEmpty() {
		return profiles
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	skill := strings.ToLower(strings.TrimSpace(filter.Skill))
	location := strings.ToLower(strings.TrimSpace(filter.Location))

	filtered := make([]models.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if search != "" && !matchesSearch(profile, search) {
			continue
		}
		if skill != "" && !matchesSkill(profile, skill) {
			continue
		}
		if location != "" && !locationContains(profile.Location, location) {
			continue
		}
		filtered = append(filtered, profile)
	}

	return filtered
}

// matchesSearch проверяет поисковую ось: совпадение по имени, предлагаемым
// или искомым навыкам засчитывается одинаково.
func matchesSearch(profile models.Profile, search string) bool {
	if strings.Contains(strings.ToLower(profile.Name), search) {
		return true
	}
	if anySkillContains(profile.SkillsOffered, search) {
		return true
	}
	return anySkillContains(profile.SkillsWanted, search)
}

// matchesSkill проверяет ось навыка: совпадение ищется и среди предлагаемых,
// и среди искомых навыков профиля.
func matchesSkill(profile models.Profile, skill string) bool {
	return anySkillContains(profile.SkillsOffered, skill) ||
		anySkillContains(profile.SkillsWanted, skill)
}

func anySkillContains(skills []string, needle string) bool {
	for _, skill := range skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

func locationContains(location *string, needle string) bool {
	if location == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*location), needle)
}

// CollectSkills собирает отсортированный список уникальных навыков по
// каталогу: объединение предлагаемых и искомых. Используется выпадающим
// фильтром по навыку.
func CollectSkills(profiles []models.Profile) []string {
	seen := make(map[string]struct{})
	var skills []string
	addSkills := func(list []string) {
		for _, skill := range list {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			skills = append(skills, strings.TrimSpace(skill))
		}
	}
	for _, profile := range profiles {
		addSkills(profile.SkillsOffered)
		addSkills(profile.SkillsWanted)
	}

	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i]) < strings.ToLower(skills[j])
	})

	return skills
}
