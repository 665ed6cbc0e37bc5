package routes

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// CORS accepts cross-origin requests only from origins, with any method or
// header and with credentials. Other origins get 403.
func CORS(origins []string) gin.HandlerFunc {
	allow := cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	})
	return func(c *gin.Context) {
		requested := c.GetHeader("Access-Control-Request-Headers")
		if c.Request.Method != http.MethodOptions || requested == "" {
			allow(c)
			return
		}
		w := &preflightWriter{ResponseWriter: c.Writer, requested: requested}
		c.Writer = w
		defer func() { c.Writer = w.ResponseWriter }()
		allow(c)
	}
}

// preflightWriter echoes the requested headers back on an accepted
// preflight, since a literal "*" is not honoured by browsers on credentialed
// requests.
type preflightWriter struct {
	gin.ResponseWriter
	requested string
}

func (w *preflightWriter) WriteHeaderNow() {
	if !w.Written() && w.Header().Get("Access-Control-Allow-Origin") != "" {
		w.Header().Set("Access-Control-Allow-Headers", w.requested)
	}
	w.ResponseWriter.WriteHeaderNow()
}

// RequestID tags every request with an id, taken from X-Request-ID when the
// client sent a usable one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one line per request once the handlers are done.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev = ev.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str(requestIDKey, c.GetString(requestIDKey))
		if len(c.Errors) > 0 {
			ev = ev.Strs("errors", c.Errors.Errors())
		}
		ev.Msg("request")
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str(requestIDKey, c.GetString(requestIDKey)).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	})
}
