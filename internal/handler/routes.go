package handler

import "github.com/golang-cafe/candidate-portal/internal/server"

func RegisterRoutes(svr server.Server) {
	svr.RegisterRoute("/health", HealthHandler(svr), []string{"GET"})

	// dashboard
	svr.RegisterRoute("/", IndexPageHandler(svr), []string{"GET"})

	// filtered candidates as json
	svr.RegisterRoute("/api/candidates", CandidatesAPIHandler(svr), []string{"GET"})

	// filter panel update and clear
	svr.RegisterRoute("/x/filters", UpdateFiltersHandler(svr), []string{"POST"})
	svr.RegisterRoute("/x/filters/reset", ResetFiltersHandler(svr), []string{"POST"})

	// free text name search
	svr.RegisterRoute("/x/search", SearchHandler(svr), []string{"POST"})

	// refetch the candidate feed
	svr.RegisterRoute("/x/refresh", RefreshCandidatesHandler(svr), []string{"POST"})

	// recruiter actions
	svr.RegisterRoute("/x/c/{id}/profile", ViewProfileHandler(svr), []string{"POST"})
	svr.RegisterRoute("/x/c/{id}/interview", ScheduleInterviewHandler(svr), []string{"POST"})
}
