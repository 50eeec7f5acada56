package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/view"
)

// handleFlowGraph serves GET /api/v1/flowgraph. Query parameters mirror the
// envelope's filterSettings field names.
func (s *Server) handleFlowGraph(w http.ResponseWriter, r *http.Request) {
	spec, err := specFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	env, err := s.service.Build(r.Context(), spec)
	if err != nil {
		s.writeBuildError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) writeBuildError(w http.ResponseWriter, err error) {
	var nf *selector.NotFoundError
	switch {
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, "not_found", nf.Error())
	case errors.Is(err, view.ErrAmbiguousTarget):
		writeError(w, http.StatusBadRequest, "ambiguous_target", err.Error())
	default:
		s.logger.Error("flow graph assembly failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func specFromQuery(q url.Values) (view.Spec, error) {
	var spec view.Spec
	var err error
	if spec.MinistryLimit, err = intParam(q, "ministryLimit"); err != nil {
		return view.Spec{}, err
	}
	if spec.ProjectLimit, err = intParam(q, "projectLimit"); err != nil {
		return view.Spec{}, err
	}
	if spec.SpendingLimit, err = intParam(q, "spendingLimit"); err != nil {
		return view.Spec{}, err
	}
	if spec.DrilldownLevel, err = intParam(q, "drilldownLevel"); err != nil {
		return view.Spec{}, err
	}
	if spec.ProjectDrilldownLevel, err = intParam(q, "projectDrilldownLevel"); err != nil {
		return view.Spec{}, err
	}
	spec.TargetMinistry = q.Get("targetMinistryName")
	spec.TargetProject = q.Get("targetProjectName")
	spec.TargetRecipient = q.Get("targetRecipientName")
	return spec, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %q is not an integer", name, raw)
	}
	return n, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
