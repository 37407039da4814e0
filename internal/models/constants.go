package models

// SwapStatus константы статусов обменов
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
)

// Privacy константы видимости профиля
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Role константы ролей пользователей
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// FeedbackCategory константы категорий отзывов
const (
	FeedbackCategoryGeneral       = "general"
	FeedbackCategoryCommunication = "communication"
	FeedbackCategorySkillQuality  = "skill-quality"
	FeedbackCategoryPunctuality   = "punctuality"
	FeedbackCategoryHelpfulness   = "helpfulness"
	FeedbackCategoryOverall       = "overall"
)

// ValidSwapStatuses список валидных статусов обменов
var ValidSwapStatuses = map[string]struct{}{
	SwapStatusPending:   {},
	SwapStatusAccepted:  {},
	SwapStatusRejected:  {},
	SwapStatusCompleted: {},
}

// ValidPrivacyValues список валидных значений видимости профиля
var ValidPrivacyValues = map[string]struct{}{
	PrivacyPublic:  {},
	PrivacyPrivate: {},
}

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleMember: {},
	RoleAdmin:  {},
}

// ValidFeedbackCategories список валидных категорий отзывов
var ValidFeedbackCategories = map[string]struct{}{
	FeedbackCategoryGeneral:       {},
	FeedbackCategoryCommunication: {},
	FeedbackCategorySkillQuality:  {},
	FeedbackCategoryPunctuality:   {},
	FeedbackCategoryHelpfulness:   {},
	FeedbackCategoryOverall:       {},
}
