package handlers

// AppHandlers holds every handler the application serves.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	ProfileHandler  *ProfileHandler
	JobHandler      *JobHandler
	TrainingHandler *TrainingHandler
	AdminHandler    *AdminHandler
}
