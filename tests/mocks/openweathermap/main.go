// Command mock-openweathermap serves canned OpenWeatherMap responses for local runs.
// Point OPENWEATHERMAP_API_BASE_URL at http://localhost:8081/data/2.5.
package main

import (
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type city struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Dt    int64   `json:"dt"`
	Coord coord   `json:"coord"`
	Main  reading `json:"main"`
	Sky   []sky   `json:"weather"`
}

type coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type reading struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type sky struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var cities = map[int64]city{
	1259229: {ID: 1259229, Name: "Pune", Coord: coord{18.5196, 73.8553}, Main: reading{29.5, 48}, Sky: []sky{{"clear sky", "01d"}}},
	1275339: {ID: 1275339, Name: "Mumbai", Coord: coord{19.0144, 72.8479}, Main: reading{31, 70}, Sky: []sky{{"haze", "50d"}}},
	1277333: {ID: 1277333, Name: "Bengaluru", Coord: coord{12.9762, 77.6033}, Main: reading{24.2, 61}, Sky: []sky{{"scattered clouds", "03d"}}},
	1273294: {ID: 1273294, Name: "Delhi", Coord: coord{28.6667, 77.2167}, Main: reading{35.8, 22}, Sky: []sky{{"smoke", "50d"}}},
	1264527: {ID: 1264527, Name: "Chennai", Coord: coord{13.0878, 80.2785}, Main: reading{33.1, 66}, Sky: []sky{{"few clouds", "02d"}}},
}

func requireKey(c *gin.Context) bool {
	if c.Query("appid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return false
	}
	return true
}

func group(c *gin.Context) {
	if !requireKey(c) {
		return
	}

	list := make([]city, 0)
	for _, raw := range strings.Split(c.Query("id"), ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "invalid id"})
			return
		}
		if entry, ok := cities[id]; ok {
			entry.Dt = time.Now().Unix()
			list = append(list, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{"cnt": len(list), "list": list})
}

// current answers with the canned city nearest to the requested coordinates
func current(c *gin.Context) {
	if !requireKey(c) {
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"cod": "400", "message": "wrong latitude or longitude"})
		return
	}

	var nearest city
	best := math.MaxFloat64
	for _, entry := range cities {
		d := math.Hypot(entry.Coord.Lat-lat, entry.Coord.Lon-lon)
		if d < best {
			best, nearest = d, entry
		}
	}
	nearest.Dt = time.Now().Unix()
	nearest.Coord = coord{lat, lon}

	c.JSON(http.StatusOK, nearest)
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/data/2.5")
	api.GET("/group", group)
	api.GET("/weather", current)

	addr := ":8081"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	slog.Info("Mock OpenWeatherMap server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
