// admin.go - privacy-conscious admin dashboard: visitor tracking with
// hashed IPs and anonymous contact form outcome counters.
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Contact form outcomes recorded for the dashboard. Submission content is
// never persisted.
const (
	outcomeSent     = "sent"
	outcomeRejected = "rejected"
	outcomeAbsorbed = "absorbed"
	outcomeFailed   = "failed"
)

type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type AdminStats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	ContactOutcomes  map[string]int64 `json:"contact_outcomes"`
	RecentVisitors   []VisitorMetric  `json:"recent_visitors"`
}

var adminToken string
var hashingSalt string

func initAdminToken() {
	adminToken = generateAdminToken()
	hashingSalt = generateAdminToken() // Use for IP hashing

	log.Printf("Admin access available at: /admin/login")
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP within one
// process lifetime, the salt rotates on restart).
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTrackingMiddleware records page views in the background. Static
// assets, the admin area and the contact API are skipped, and the Do Not
// Track header is honored.
func visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		if c.GetHeader("DNT") == "1" || db == nil {
			c.Next()
			return
		}

		go trackVisitor(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

func trackVisitor(ip, userAgent, path string) {
	if db == nil {
		return
	}
	_, err := db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashIP(ip), userAgent, path, time.Now())
	if err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// recordContactOutcome bumps the anonymous counter for one contact form
// outcome. A nil db (tests) makes it a no-op.
func recordContactOutcome(outcome string) {
	if db == nil {
		return
	}
	if _, err := db.Exec(`INSERT INTO contact_events (outcome, timestamp) VALUES (?, ?)`, outcome, time.Now()); err != nil {
		log.Printf("Error recording contact outcome %q: %v", outcome, err)
	}
}

// cleanupOldVisitorData enforces the 12 month retention window.
func cleanupOldVisitorData() {
	result, err := db.Exec(`
		DELETE FROM visitors
		WHERE timestamp < datetime('now', '-12 months')
	`)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}

	rowsDeleted, _ := result.RowsAffected()
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

func getAdminStats() (*AdminStats, error) {
	stats := &AdminStats{ContactOutcomes: map[string]int64{}}

	if err := db.QueryRow("SELECT COUNT(*) FROM visitors").Scan(&stats.TotalVisitors); err != nil {
		return nil, err
	}
	if err := db.QueryRow("SELECT COUNT(DISTINCT hashed_ip) FROM visitors").Scan(&stats.UniqueVisitors); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM visitors
		WHERE DATE(timestamp) = DATE('now')
	`).Scan(&stats.VisitorsToday); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM visitors
		WHERE timestamp >= datetime('now', '-7 days')
	`).Scan(&stats.VisitorsThisWeek); err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT outcome, COUNT(*) FROM contact_events GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var outcome string
		var count int64
		if err := rows.Scan(&outcome, &count); err != nil {
			continue
		}
		stats.ContactOutcomes[outcome] = count
	}

	rows, err = db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var visitor VisitorMetric
		if err := rows.Scan(&visitor.ID, &visitor.HashedIP, &visitor.UserAgent, &visitor.Path, &visitor.Timestamp); err != nil {
			continue
		}
		stats.RecentVisitors = append(stats.RecentVisitors, visitor)
	}

	return stats, nil
}

func setupAdminRoutes(r *gin.Engine, cfg *Config) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		adminUsername := cfg.AdminUsername
		adminPassword := cfg.AdminPassword

		// Default credentials for development only.
		if adminUsername == "" {
			adminUsername = "admin"
			if gin.Mode() == gin.DebugMode {
				log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
			}
		}
		if adminPassword == "" {
			adminPassword = "admin123"
			if gin.Mode() == gin.DebugMode {
				log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
			}
		}

		if username == adminUsername && password == adminPassword {
			c.SetCookie("admin_token", adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
		} else {
			log.Printf("Failed admin login attempt from %s", hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
		}
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-dashboard.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		go cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})
}
