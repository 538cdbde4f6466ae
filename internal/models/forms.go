package models

// Form binding structs for the HTML surface. Validation happens locally,
// before any upstream call.

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type RegisterForm struct {
	Name     string `form:"name" binding:"required,min=2,max=100"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

type PasswordResetForm struct {
	Email string `form:"email" binding:"required,email"`
}

// UserProfileForm collects a candidate profile managed by a matchmaker.
type UserProfileForm struct {
	FirstName string `form:"first_name" json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `form:"last_name" json:"last_name" binding:"required,min=2,max=50"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Phone     string `form:"phone" json:"phone" binding:"required,min=10,max=15"`
	Age       int    `form:"age" json:"age" binding:"required,gte=18,lte=120"`
	Gender    string `form:"gender" json:"gender" binding:"required,oneof=male female"`
	Height    int    `form:"height" json:"height" binding:"required,gte=120,lte=220"`

	City    string `form:"city" json:"city" binding:"required,max=100"`
	State   string `form:"state" json:"state" binding:"omitempty,max=100"`
	Country string `form:"country" json:"country" binding:"required,max=100"`

	ReligiousLevel    string `form:"religious_level" json:"religious_level" binding:"required,oneof=secular traditional modern_orthodox yeshivish hassidic other"`
	KosherLevel       string `form:"kosher_level" json:"kosher_level" binding:"required,oneof=strict kosher_out vegetarian not_strict"`
	ShabbatObservance string `form:"shabbat_observance" json:"shabbat_observance" binding:"required,oneof=strict partial not_observant"`

	Background string `form:"background" json:"background" binding:"omitempty,max=200"`
	Languages  string `form:"languages" json:"languages" binding:"omitempty,max=200"`

	Education  string `form:"education" json:"education" binding:"omitempty,oneof=high_school associates bachelors masters doctorate rabbinical other"`
	Occupation string `form:"occupation" json:"occupation" binding:"omitempty,max=100"`

	WantsChildren string `form:"wants_children" json:"wants_children" binding:"omitempty,oneof=yes no undecided"`

	Hobbies        string `form:"hobbies" json:"hobbies" binding:"omitempty,max=500"`
	AdditionalInfo string `form:"additional_info" json:"additional_info" binding:"omitempty,max=1000"`

	AgeRangeMin         int    `form:"age_range_min" json:"age_range_min" binding:"omitempty,gte=18,lte=120"`
	AgeRangeMax         int    `form:"age_range_max" json:"age_range_max" binding:"omitempty,gte=18,lte=120"`
	HeightPreferenceMin int    `form:"height_preference_min" json:"height_preference_min" binding:"omitempty,gte=120,lte=220"`
	HeightPreferenceMax int    `form:"height_preference_max" json:"height_preference_max" binding:"omitempty,gte=120,lte=220"`
	ReligiousPreference string `form:"religious_preference" json:"religious_preference" binding:"omitempty,oneof=secular traditional modern_orthodox yeshivish hassidic any other"`
	LocationPreference  string `form:"location_preference" json:"location_preference" binding:"omitempty,max=200"`
}

// MatchmakerProfileForm edits the signed-in matchmaker's own profile.
type MatchmakerProfileForm struct {
	Name  string `form:"name" json:"name" binding:"required,min=2,max=100"`
	Email string `form:"email" json:"email" binding:"required,email"`
	Phone string `form:"phone" json:"phone" binding:"omitempty,min=10,max=15"`
	Bio   string `form:"bio" json:"bio" binding:"omitempty,max=1000"`
}

// ApplicationForm is the public applicant intake form.
type ApplicationForm struct {
	FirstName         string `form:"first_name" binding:"required,min=2,max=50"`
	LastName          string `form:"last_name" binding:"required,min=2,max=50"`
	Email             string `form:"email" binding:"required,email"`
	Phone             string `form:"phone" binding:"required,min=10,max=15"`
	DOB               string `form:"dob" binding:"required"`
	Gender            string `form:"gender" binding:"required,oneof=male female"`
	City              string `form:"city" binding:"required,max=100"`
	State             string `form:"state" binding:"omitempty,max=100"`
	Country           string `form:"country" binding:"required,max=100"`
	ReligiousLevel    string `form:"religious_level" binding:"required,oneof=secular traditional modern_orthodox yeshivish hassidic other"`
	KosherLevel       string `form:"kosher_level" binding:"required,oneof=strict kosher_out vegetarian not_strict"`
	ShabbatObservance string `form:"shabbat_observance" binding:"required,oneof=strict partial not_observant"`
	MatchmakerID      int    `form:"matchmaker_id" binding:"omitempty,gt=0"`
}

// Fields returns the application as flat multipart form fields for the
// upstream submission.
func (f *ApplicationForm) Fields() map[string]string {
	return map[string]string{
		"first_name":         f.FirstName,
		"last_name":          f.LastName,
		"email":              f.Email,
		"phone":              f.Phone,
		"dob":                f.DOB,
		"gender":             f.Gender,
		"city":               f.City,
		"state":              f.State,
		"country":            f.Country,
		"religious_level":    f.ReligiousLevel,
		"kosher_level":       f.KosherLevel,
		"shabbat_observance": f.ShabbatObservance,
	}
}
