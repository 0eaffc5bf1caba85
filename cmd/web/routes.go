package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(app.actorSession(shared(next)))))
		}
	)

	mux.Handle("POST /api/smartfill", api(http.HandlerFunc(app.smartfillPOST)))

	mux.Handle("GET /api/rules", api(http.HandlerFunc(app.rulesGET)))
	mux.Handle("POST /api/rules", api(http.HandlerFunc(app.rulesPOST)))
	mux.Handle("GET /api/rules/{id}", api(http.HandlerFunc(app.ruleGET)))
	mux.Handle("PUT /api/rules/{id}", api(http.HandlerFunc(app.rulePUT)))
	mux.Handle("DELETE /api/rules/{id}", api(http.HandlerFunc(app.ruleDELETE)))

	mux.Handle("POST /api/sessions/apply-rules", api(http.HandlerFunc(app.applyRulesPOST)))

	mux.Handle("POST /api/plans/diff", api(http.HandlerFunc(app.plansDiffPOST)))
	mux.Handle("POST /api/plans/bulk", api(http.HandlerFunc(app.plansBulkPOST)))

	mux.Handle("GET /api/audit", api(http.HandlerFunc(app.auditGET)))
	mux.Handle("POST /api/audit/trim", api(http.HandlerFunc(app.auditTrimPOST)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))

	return mux
}
