package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
    "strings"  // strings splits the configured piano list
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required infrastructure values are enforced with
// fatals; booking policy knobs fall back to the practice room's defaults.
type Config struct {
    Env               string   // application environment (e.g. "dev", "prod")
    Port              string   // HTTP port to listen on
    DBUser            string   // database username
    DBPass            string   // database password (optional)
    DBHost            string   // database host address
    DBPort            string   // database port number
    DBName            string   // database name
    AdminName         string   // administrative holder name (reserved sentinel pair)
    AdminID           string   // administrative holder id
    HolderIDLength    int      // required length of a regular holder id; 0 disables the check
    BookingWindowDays int      // rolling booking horizon in days; 0 disables the bound
    Pianos            []string // bookable piano names
    RankingSize       int      // number of entries in the monthly ranking
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The administrative
// pair defaults to the club's long-standing convention; real deployments
// should override it.
func Load() Config {
    return Config{
        Env:               must("APP_ENV"),      // environment (dev/test/prod)
        Port:              must("APP_PORT"),     // port to bind the HTTP server
        DBUser:            must("DB_USER"),      // database user
        DBPass:            os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:            must("DB_HOST"),      // database host
        DBPort:            must("DB_PORT"),      // database port
        DBName:            must("DB_NAME"),      // database name
        AdminName:         getenv("ADMIN_NAME", "운영자"),
        AdminID:           getenv("ADMIN_ID", "12345"),
        HolderIDLength:    envInt("HOLDER_ID_LEN", 10),
        BookingWindowDays: envInt("BOOKING_WINDOW_DAYS", 14),
        Pianos:            parseList(getenv("PIANOS", "piano-1,piano-2,piano-3,piano-4")),
        RankingSize:       envInt("RANKING_SIZE", 3),
    }
}

// parseList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func parseList(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
