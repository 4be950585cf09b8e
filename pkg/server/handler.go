package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/limaJavier/lessonplanner/pkg/model"
	"github.com/limaJavier/lessonplanner/pkg/report"
)

type buildRequest struct {
	Requirements []requirementPayload `json:"requirements" binding:"required,min=1,dive"`
	Seed         uint64               `json:"seed"` // 0 falls back to the configured seed
	Attempts     uint64               `json:"attempts" binding:"omitempty,max=1000"`
	Probes       uint64               `json:"probes" binding:"omitempty,max=1000"`
	Strategy     string               `json:"strategy" binding:"omitempty,oneof=jitter exhaustive"`
}

type requirementPayload struct {
	Group   string `json:"group" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Teacher string `json:"teacher" binding:"required"`
}

func (server *Server) buildTimetable(c *gin.Context) {
	var request buildRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timetable request: " + err.Error()})
		return
	}

	requirements, err := model.ProcessRawInput(lo.Map(request.Requirements, func(payload requirementPayload, _ int) model.RawRequirement {
		return model.RawRequirement{Group: payload.Group, Subject: payload.Subject, Teacher: payload.Teacher}
	}))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	options := server.cfg.Options()
	if request.Attempts != 0 {
		options.Attempts = request.Attempts
	}
	if request.Probes != 0 {
		options.Probes = request.Probes
	}
	if request.Strategy != "" {
		options.Strategy = model.ProbeStrategy(request.Strategy)
	}
	seed := lo.Ternary(request.Seed != 0, request.Seed, server.cfg.Search.Seed)

	logger := server.logger.With(zap.String("request_id", c.GetString(requestIdKey)))
	timetabler := model.NewRandomizedTimetabler(options, model.NewRandomizer(seed), logger)

	start := time.Now()
	timetable, err := timetabler.Build(requirements)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	server.recorder.ObserveBuild(timetable, time.Since(start))

	document, err := report.NewDocument(timetable)
	if err != nil {
		logger.Error("cannot build timetable document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot build timetable document"})
		return
	}
	c.JSON(http.StatusOK, document)
}
