package remote

// User is the platform's user record as returned by login and profile
// endpoints.
type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Patronymic         string `json:"patronymic,omitempty"`
	Category           string `json:"category"`
	Region             string `json:"region"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	CreatedAt          string `json:"created_at"`
}

// SessionTokens is the token pair issued at login and refresh.
type SessionTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// loginEnvelope is the double-nested login response: the outer envelope wraps
// the edge function result, which wraps the auth payload.
type loginEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Success bool `json:"success"`
		Data    struct {
			User    User          `json:"user"`
			Session SessionTokens `json:"session"`
			Message string        `json:"message"`
		} `json:"data"`
	} `json:"data"`
}

// VerificationStatuses reports review state per claimed category.
type VerificationStatuses struct {
	PrimaryCategory      string            `json:"primary_category"`
	AdditionalCategories map[string]string `json:"additional_categories"`
}

// Statistics is the small profile counters block on auth-me.
type Statistics struct {
	ProjectsJoined        int `json:"projects_joined"`
	ApplicationsSubmitted int `json:"applications_submitted"`
	DocumentsUploaded     int `json:"documents_uploaded"`
}

// PendingApplication is one not-yet-decided program application.
type PendingApplication struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"project_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Me is the authenticated user's full profile view.
type Me struct {
	Profile              User                 `json:"profile"`
	VerificationStatuses VerificationStatuses `json:"verification_statuses"`
	Statistics           Statistics           `json:"statistics"`
	PendingApplications  []PendingApplication `json:"pending_applications"`
}

type meEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    Me     `json:"data"`
}

type refreshEnvelope struct {
	Success bool          `json:"success"`
	Data    SessionTokens `json:"data"`
}

type checkEmailEnvelope struct {
	Available bool `json:"available"`
}

// Project is one public support program.
type Project struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Slug                string `json:"slug"`
	ShortDescription    string `json:"short_description"`
	ProjectType         string `json:"project_type"`
	FeaturedImageURL    string `json:"featured_image_url"`
	TotalHelped         int    `json:"total_helped"`
	CurrentParticipants int    `json:"current_participants"`
	IsFeatured          bool   `json:"is_featured"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
}

// ProjectDetail extends Project with the fields shown on a program page.
type ProjectDetail struct {
	Project
	LongDescription     string   `json:"long_description"`
	Requirements        []string `json:"requirements"`
	Benefits            []string `json:"benefits"`
	DurationMonths      int      `json:"duration_months"`
	ContactEmail        string   `json:"contact_email"`
	ContactPhone        string   `json:"contact_phone"`
	ApplicationDeadline string   `json:"application_deadline"`
	MaxParticipants     int      `json:"max_participants"`
	Location            string   `json:"location"`
	Tags                []string `json:"tags"`
}

type projectsEnvelope struct {
	Success bool      `json:"success"`
	Data    []Project `json:"data"`
}

type projectDetailEnvelope struct {
	Success bool          `json:"success"`
	Data    ProjectDetail `json:"data"`
}

// Participation is the caller's enrollment state in one program.
type Participation struct {
	ProjectID int    `json:"project_id"`
	Status    string `json:"status"`
	JoinedAt  string `json:"joined_at"`
}

type participationEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Participation *Participation `json:"participation"`
	} `json:"data"`
}

// NewsItem is one news article or its listing teaser.
type NewsItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content,omitempty"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	PublishedAt string `json:"published_at"`
}

// NewsList is one page of news plus the total for pagination.
type NewsList struct {
	News  []NewsItem `json:"news"`
	Total int        `json:"total"`
}

type newsArticleEnvelope struct {
	Success bool     `json:"success"`
	Data    NewsItem `json:"data"`
}
