package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mastercactapus/gcvm/gcode"
	"github.com/mastercactapus/gcvm/vm"
)

var (
	metricPrograms = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gcvm_programs_total",
		Help: "Programs interpreted.",
	})
	metricCommands = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gcvm_commands_total",
		Help: "Commands applied.",
	})
	metricDiagnostics = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gcvm_diagnostics_total",
		Help: "Diagnostics reported, by kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(metricPrograms, metricCommands, metricDiagnostics)
}

type api struct {
	http.Handler
	log     *slog.Logger
	dataDir string
	sse     *sse.Server

	mx      sync.Mutex
	last    vm.State
	hasLast bool
}

func newAPI(log *slog.Logger, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		log:     log,
		dataDir: dir,
		sse:     sse.NewServer(&sse.Options{Logger: stdlog(io.Discard)}),
	}

	r.HandleFunc("/api/run", a.runProgram).Methods("POST")
	r.HandleFunc("/api/run/{name}", a.runStored).Methods("POST")
	r.HandleFunc("/api/state", a.state).Methods("GET")
	r.HandleFunc("/api/session", a.session).Methods("GET")
	r.HandleFunc("/data/{name}", a.getFile).Methods("GET")
	r.HandleFunc("/data/{name}", a.putFile).Methods("PUT")
	r.HandleFunc("/data/{name}", a.deleteFile).Methods("DELETE")
	r.PathPrefix("/events/").Handler(a.sse)
	r.Handle("/metrics", promhttp.Handler())

	return a
}

func stdlog(w io.Writer) *log.Logger { return log.New(w, "", 0) }

type runResult struct {
	ID          string          `json:"id"`
	State       vm.State        `json:"state"`
	Diagnostics []vm.Diagnostic `json:"diagnostics"`
}

func (a *api) publishState(s vm.State) {
	data, err := json.Marshal(s)
	if err != nil {
		a.log.Error("marshal state", "error", err)
		return
	}
	a.sse.SendMessage("/events/state", sse.SimpleMessage(string(data)))
}

func (a *api) execute(w http.ResponseWriter, gr gcode.Reader) {
	id := uuid.NewString()

	r := vm.NewRunner(vm.DefaultRegistry(), vm.NewMachine())
	r.Logger = a.log.With("run_id", id)
	r.OnState = func(s vm.State) {
		metricCommands.Inc()
		a.publishState(s)
	}

	diags, err := r.Run(gr)
	if err != nil {
		a.log.Error("run", "run_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metricPrograms.Inc()
	for _, d := range diags {
		metricDiagnostics.WithLabelValues(d.Kind).Inc()
	}

	state := r.Machine.State()
	a.mx.Lock()
	a.last, a.hasLast = state, true
	a.mx.Unlock()

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(runResult{ID: id, State: state, Diagnostics: diags})
	if err != nil {
		a.log.Error("encode response", "error", err)
	}
}

func (a *api) runProgram(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	a.execute(w, gcode.NewParser(req.Body))
}

func (a *api) runStored(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		a.log.Error("open", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	a.execute(w, gcode.NewParser(f))
}

func (a *api) state(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	last, ok := a.last, a.hasLast
	a.mx.Unlock()

	if !ok {
		http.Error(w, "no runs yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(last)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

type sessionResult struct {
	State       vm.State        `json:"state"`
	Diagnostics []vm.Diagnostic `json:"diagnostics"`
}

// session runs an interactive interpreter over a websocket: every text
// frame is interpreted against the same per-connection machine, and
// each reply carries the new state plus any diagnostics.
func (a *api) session(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		a.log.Error("upgrade", "error", err)
		return
	}
	defer ws.Close()

	id := uuid.NewString()
	r := vm.NewRunner(vm.DefaultRegistry(), vm.NewMachine())
	r.Logger = a.log.With("session_id", id)
	r.OnState = func(s vm.State) {
		metricCommands.Inc()
		a.publishState(s)
	}

	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		diags, err := r.Run(gcode.NewParser(bytes.NewReader(data)))
		if err != nil {
			a.log.Error("session run", "session_id", id, "error", err)
			return
		}
		for _, d := range diags {
			metricDiagnostics.WithLabelValues(d.Kind).Inc()
		}

		err = ws.WriteJSON(sessionResult{State: r.Machine.State(), Diagnostics: diags})
		if err != nil {
			return
		}
	}
}

func safePath(base, name string) (bool, string) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) && filepath.Separator != '/' {
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	return true, filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
}

func (a *api) getFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	http.ServeFile(w, req, name)
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		a.log.Error("create", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		a.log.Error("write", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, mux.Vars(req)["name"])
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		a.log.Error("delete", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
