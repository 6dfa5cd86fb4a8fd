package translation

// Project is a localization project on the translation service.
type Project struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Identifier        string   `json:"identifier"`
	Description       string   `json:"description,omitempty"`
	SourceLanguageID  string   `json:"sourceLanguageId"`
	TargetLanguageIDs []string `json:"targetLanguageIds"`
	Visibility        string   `json:"visibility,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
	UpdatedAt         string   `json:"updatedAt,omitempty"`
}

// WordCounts breaks down translation progress for one language.
type WordCounts struct {
	Total      int `json:"total"`
	Translated int `json:"translated"`
	Approved   int `json:"approved"`
}

// LanguageProgress is per-language translation progress within a project.
type LanguageProgress struct {
	LanguageID          string     `json:"languageId"`
	TranslationProgress int        `json:"translationProgress"`
	ApprovalProgress    int        `json:"approvalProgress"`
	Words               WordCounts `json:"words"`
}

// File is a translatable source file within a project.
type File struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Language is a language supported by the translation service.
type Language struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TwoLettersCode string `json:"twoLettersCode"`
	Locale         string `json:"locale"`
	TextDirection  string `json:"textDirection,omitempty"`
}

// Task is a translation or proofreading assignment.
type Task struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"projectId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	LanguageID  string `json:"languageId"`
	WordCount   int    `json:"wordCount"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// CreateTaskRequest describes a task to create.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	LanguageID  string  `json:"languageId"`
	FileIDs     []int64 `json:"fileIds,omitempty"`
	Description string  `json:"description,omitempty"`
	Deadline    string  `json:"deadline,omitempty"`
}

// Group is a user group on the translation service.
type Group struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UsersCount int    `json:"usersCount"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// GroupMember is a user belonging to a group.
type GroupMember struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Glossary is a terminology glossary.
type Glossary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LanguageID string `json:"languageId"`
	TermsCount int    `json:"termsCount"`
}

// Term is a single glossary term.
type Term struct {
	ID           int64  `json:"id"`
	GlossaryID   int64  `json:"glossaryId"`
	Text         string `json:"text"`
	Description  string `json:"description,omitempty"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	LanguageID   string `json:"languageId"`
}

// PreTranslateRequest asks the service to machine-translate untranslated
// strings for the given target languages.
type PreTranslateRequest struct {
	LanguageIDs []string `json:"languageIds"`
	Method      string   `json:"method,omitempty"`
}

// PreTranslation reports the state of a pre-translation run.
type PreTranslation struct {
	ID       string `json:"identifier"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}
