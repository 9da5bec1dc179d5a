package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brook-ai/brook/agents"
)

type createSessionRequest struct {
	PassengerID string `json:"passenger_id" binding:"required"`
}

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

type approvalRequest struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, err := s.bot.NewSession(req.PassengerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id":   session.ID(),
		"passenger_id": session.PassengerID(),
	})
}

func (s *Server) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := s.bot.Handle(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		s.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) resolveApproval(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var (
		reply *agents.Reply
		err   error
	)
	if req.Approved {
		reply, err = s.bot.Approve(c.Request.Context(), c.Param("id"))
	} else {
		reply, err = s.bot.Deny(c.Request.Context(), c.Param("id"), req.Reason)
	}
	if err != nil {
		s.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) history(c *gin.Context) {
	history, err := s.bot.History(c.Param("id"))
	if err != nil {
		s.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}

func (s *Server) deleteSession(c *gin.Context) {
	if _, err := s.bot.Session(c.Param("id")); err != nil {
		s.replyError(c, err)
		return
	}
	s.bot.DeleteSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) replyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, agents.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, agents.ErrPendingApproval), errors.Is(err, agents.ErrNoPendingApproval):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
