// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Netcracker/qubership-web-audit-service/client"
	"github.com/Netcracker/qubership-web-audit-service/controller"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/presenter"
	"github.com/Netcracker/qubership-web-audit-service/security"
	"github.com/Netcracker/qubership-web-audit-service/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func main() {
	readyChan := make(chan bool)
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}
	setLogLevel(systemInfoService.GetLogLevel())

	llmClient := makeLLMClient(systemInfoService)
	analysisService := service.NewAnalysisService(llmClient, systemInfoService.GetAnalysisTimeout())
	sessionService := service.NewSessionService(analysisService,
		systemInfoService.GetStatusInterval(),
		systemInfoService.GetSessionTTL(),
		systemInfoService.GetSessionCapacity())

	renderer, err := presenter.NewRenderer()
	if err != nil {
		panic(err)
	}

	sessionController := controller.NewSessionController(sessionService, renderer)
	auditController := controller.NewAuditController(analysisService)
	healthController := controller.NewHealthController(readyChan)

	router := makeRouter(sessionController, auditController, healthController)
	readyChan <- true
	close(readyChan)

	debug.SetGCPercent(30)

	srv := makeServer(systemInfoService, router)
	log.Fatalf("%v", srv.ListenAndServe())
}

// makeLLMClient returns nil when the credential is missing, analyses then fail with a configuration error.
func makeLLMClient(systemInfoService service.SystemInfoService) client.LLMClient {
	llmClient, err := client.NewLLMClient(systemInfoService.GetLLMProvider(),
		systemInfoService.GetLLMApiKey(),
		systemInfoService.GetLLMModel(),
		systemInfoService.GetLLMProxy())
	if err != nil {
		var cfgErr exception.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Warnf("LLM client is not configured: %v", err)
			return nil
		}
		panic(err)
	}
	return llmClient
}

func makeRouter(sessionController controller.SessionController, auditController controller.AuditController, healthController controller.HealthController) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", security.Recover(sessionController.GetPage)).Methods(http.MethodGet)
	router.HandleFunc("/analyze", security.Recover(sessionController.SubmitForm)).Methods(http.MethodPost)
	router.HandleFunc("/settings", security.Recover(sessionController.SettingsForm)).Methods(http.MethodPost)
	router.HandleFunc("/reset", security.Recover(sessionController.ResetForm)).Methods(http.MethodPost)
	router.HandleFunc("/export", security.Recover(sessionController.ExportForm)).Methods(http.MethodPost)

	router.HandleFunc("/api/session", security.Recover(sessionController.GetSession)).Methods(http.MethodGet)
	router.HandleFunc("/api/session/analyze", security.Recover(sessionController.Analyze)).Methods(http.MethodPost)
	router.HandleFunc("/api/session/settings", security.Recover(sessionController.UpdateSettings)).Methods(http.MethodPost)
	router.HandleFunc("/api/session/reset", security.Recover(sessionController.Reset)).Methods(http.MethodPost)
	router.HandleFunc("/api/session/dashboard", security.Recover(sessionController.GetDashboard)).Methods(http.MethodGet)

	router.HandleFunc("/api/audit", security.Recover(auditController.RunAudit)).Methods(http.MethodPost)
	router.HandleFunc("/api/schema", security.Recover(auditController.GetSchema)).Methods(http.MethodGet)
	router.HandleFunc("/api/options", security.Recover(auditController.GetOptions)).Methods(http.MethodGet)
	router.HandleFunc("/api/export", security.Recover(auditController.Export)).Methods(http.MethodPost)

	router.HandleFunc("/live", healthController.HandleLiveRequest).Methods(http.MethodGet)
	router.HandleFunc("/ready", healthController.HandleReadyRequest).Methods(http.MethodGet)
	return router
}

func setLogLevel(level string) {
	if level == "" {
		log.SetLevel(log.InfoLevel)
		return
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level '%s', using info: %v", level, err)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Listen addr = %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type"}))

	allowedOrigin := systemInfoService.GetOriginAllowed()
	if allowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{allowedOrigin}))
		corsOptions = append(corsOptions, handlers.AllowCredentials())
	}
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}))

	// the analysis call has no timeout of its own, only the synchronous /api/audit waits for it
	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: 600 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}
