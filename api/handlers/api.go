package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/api"
	"github.com/healthspectrum/healthspectrum-api/api/scheduler"
	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/docai"
	"github.com/healthspectrum/healthspectrum-api/models"
	"github.com/healthspectrum/healthspectrum-api/storage"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Store     storage.FileStore
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper), JWTSecret: a.Config.JWTSecret}
	m.SetupGoGuardian()

	userDB := databases.NewUserDatabase(a.dbHelper)
	patientDB := databases.NewPatientDatabase(a.dbHelper)
	docDB := databases.NewSourceDocumentDatabase(a.dbHelper)
	jobDB := databases.NewProcessingJobDatabase(a.dbHelper)
	reportDB := databases.NewAnalysisReportDatabase(a.dbHelper)

	own := api.Ownership{DB: userDB}

	u := User{DB: userDB, MW: m}
	p := Patient{DB: patientDB, UDB: userDB}
	d := SourceDocument{DB: docDB, Store: a.Store, MaxUploadBytes: a.Config.MaxUploadBytes}
	j := ProcessingJob{DB: jobDB}
	rep := AnalysisReport{DB: reportDB}
	an := Analyze{
		Jobs:           jobDB,
		Docs:           docDB,
		Reports:        reportDB,
		Patients:       patientDB,
		Users:          userDB,
		Store:          a.Store,
		LandingAI:      docai.NewLandingAIClient(a.Config.LandingAIURL, a.Config.LandingAIKey),
		Gemini:         docai.NewGeminiClient("", a.Config.GeminiKey, a.Config.GeminiModel),
		MaxUploadBytes: a.Config.MaxUploadBytes,
		Notify:         SendReportReadyEmail,
	}
	wh := Webhook{DB: userDB, Secret: a.Config.WebhookSecret}
	cloudinaryHandler := CloudinaryHandler{}

	// every route except the websocket watch runs under a deadline; the
	// analyze route gets a longer one for the vendor round trip
	timeout := api.TimeoutMiddleware(api.DefaultRequestTimeout)
	analyzeTimeout := api.TimeoutMiddleware(api.AnalyzeRequestTimeout)
	guard := func(h http.Handler) http.Handler { return timeout(m.Middleware(h)) }

	// healthchex
	r := mux.NewRouter()
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/register", timeout(http.HandlerFunc(u.RegisterHandler))).Methods("POST")
	apiCreate.Handle("/auth/login", timeout(http.HandlerFunc(u.LoginHandler))).Methods("POST")
	apiCreate.Handle("/auth/token", guard(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", guard(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/me", guard(http.HandlerFunc(u.MeHandler))).Methods("GET")

	apiCreate.Handle("/webhooks/identity", timeout(http.HandlerFunc(wh.IdentityEventHandler))).Methods("POST")

	apiCreate.Handle("/patient", guard(http.HandlerFunc(p.CreatePatientHandler))).Methods("POST")
	apiCreate.Handle("/patients", guard(http.HandlerFunc(p.MyPatientsHandler))).Methods("GET")

	// patient-scoped routes share one ownership middleware, so the access
	// check cannot drift between resources
	patientRoutes := apiCreate.PathPrefix("/patient/{patient_id}").Subrouter()
	patientRoutes.Use(mux.MiddlewareFunc(timeout))
	patientRoutes.Use(mux.MiddlewareFunc(m.Middleware))
	patientRoutes.Use(own.Require(api.PatientIDFromPath("patient_id")))
	patientRoutes.Handle("", http.HandlerFunc(p.PatientByIDHandler)).Methods("GET")
	patientRoutes.Handle("", http.HandlerFunc(p.UpdatePatientHandler)).Methods("PUT")
	patientRoutes.Handle("", http.HandlerFunc(p.DeletePatientHandler)).Methods("DELETE")
	patientRoutes.Handle("/unlink", http.HandlerFunc(p.UnlinkPatientHandler)).Methods("POST")
	patientRoutes.Handle("/documents", http.HandlerFunc(d.SourceDocumentsByPatientHandler)).Methods("GET")
	patientRoutes.Handle("/jobs", http.HandlerFunc(j.ProcessingJobsByPatientHandler)).Methods("GET")
	patientRoutes.Handle("/reports", http.HandlerFunc(rep.AnalysisReportsByPatientHandler)).Methods("GET")

	apiCreate.Handle("/document",
		guard(own.Require(api.PatientIDFromForm("patientId", a.Config.MaxUploadBytes))(http.HandlerFunc(d.UploadSourceDocumentHandler)))).Methods("POST")
	apiCreate.Handle("/document/{source_document_id}",
		guard(own.Require(a.documentPatientRef(docDB))(http.HandlerFunc(d.SourceDocumentByIDHandler)))).Methods("GET")
	apiCreate.Handle("/document/{source_document_id}/archive",
		guard(own.Require(a.documentPatientRef(docDB))(http.HandlerFunc(d.ArchiveSourceDocumentHandler)))).Methods("PATCH")
	apiCreate.Handle("/document/{source_document_id}",
		guard(own.Require(a.documentPatientRef(docDB))(http.HandlerFunc(d.DeleteSourceDocumentHandler)))).Methods("DELETE")

	apiCreate.Handle("/job",
		guard(own.Require(api.PatientIDFromBody("patientId"))(http.HandlerFunc(j.CreateProcessingJobHandler)))).Methods("POST")
	apiCreate.Handle("/job/{job_id}",
		guard(own.Require(a.jobPatientRef(jobDB))(http.HandlerFunc(j.ProcessingJobByIDHandler)))).Methods("GET")
	apiCreate.Handle("/job/{job_id}/status",
		guard(own.Require(a.jobPatientRef(jobDB))(http.HandlerFunc(j.UpdateProcessingJobStatusHandler)))).Methods("PUT")
	// no deadline on the watch route, the websocket stream stays open until
	// the job reaches a terminal status
	apiCreate.Handle("/job/{job_id}/watch",
		m.Middleware(own.Require(a.jobPatientRef(jobDB))(http.HandlerFunc(j.WatchProcessingJobHandler)))).Methods("GET")

	apiCreate.Handle("/report",
		guard(own.Require(api.PatientIDFromBody("patientId"))(http.HandlerFunc(rep.CreateAnalysisReportHandler)))).Methods("POST")
	apiCreate.Handle("/report/{report_id}",
		guard(own.Require(a.reportPatientRef(reportDB))(http.HandlerFunc(rep.AnalysisReportByIDHandler)))).Methods("GET")
	apiCreate.Handle("/report/{report_id}/conditions/{condition_index}/feedback",
		guard(own.Require(a.reportPatientRef(reportDB))(http.HandlerFunc(rep.ConditionFeedbackHandler)))).Methods("PUT")
	apiCreate.Handle("/report/{report_id}",
		guard(own.Require(a.reportPatientRef(reportDB))(http.HandlerFunc(rep.DeleteAnalysisReportHandler)))).Methods("DELETE")

	// the analysis gateway carries the same ownership gate as everything else
	apiCreate.Handle("/analyze",
		analyzeTimeout(m.Middleware(own.Require(api.PatientIDFromForm("patientId", a.Config.MaxUploadBytes))(http.HandlerFunc(an.AnalyzeHandler))))).Methods("POST")

	apiCreate.Handle("/generate-signature", guard(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// documentPatientRef resolves the owning patient of a source document route.
func (a *App) documentPatientRef(db databases.SourceDocumentDatabase) api.PatientRef {
	return func(r *http.Request) (interface{}, error) {
		doc, err := db.GetSourceDocumentByID(r.Context(), mux.Vars(r)["source_document_id"])
		if err != nil {
			return nil, notFoundOr(err)
		}
		return doc.PatientID, nil
	}
}

// jobPatientRef resolves the owning patient of a processing job route.
func (a *App) jobPatientRef(db databases.ProcessingJobDatabase) api.PatientRef {
	return func(r *http.Request) (interface{}, error) {
		job, err := db.GetProcessingJobByID(r.Context(), mux.Vars(r)["job_id"])
		if err != nil {
			return nil, notFoundOr(err)
		}
		return job.PatientID, nil
	}
}

// reportPatientRef resolves the owning patient of an analysis report route.
func (a *App) reportPatientRef(db databases.AnalysisReportDatabase) api.PatientRef {
	return func(r *http.Request) (interface{}, error) {
		report, err := db.GetAnalysisReportByID(r.Context(), mux.Vars(r)["report_id"])
		if err != nil {
			return nil, notFoundOr(err)
		}
		return report.PatientID, nil
	}
}

// notFoundOr maps a failed resource load onto the ownership middleware's 404
// sentinel. Malformed hex IDs read as not found too, so unknown resource IDs
// never leak a 403.
func notFoundOr(err error) error {
	if !errors.Is(err, mongo.ErrNoDocuments) {
		zap.S().With(err).Debug("resource lookup failed during ownership check")
	}
	return api.ErrResourceNotFound
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("healthspectrum-api has connected to the database")

	if a.Store == nil {
		store, err := storage.NewCloudinaryStore(a.Config.CloudinaryURL, "healthspectrum")
		if err != nil {
			zap.S().With(err).Error("failed to create file store")
			return err
		}
		a.Store = store
	}

	// start the stale-job reaper
	a.Scheduler = scheduler.NewScheduler(
		databases.NewProcessingJobDatabase(a.dbHelper),
		databases.NewSchedulerLockDatabase(a.dbHelper),
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
