package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Authz AuthzConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Name string
	Env  string // development | production
}

// DBConfig conexión a PostgreSQL. Si DatabaseURL está definida, tiene prioridad sobre los campos sueltos.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
}

// DSN arma el data source name a partir de los campos sueltos.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// JWTConfig firma y vigencia de tokens.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig puerto del servidor.
type HTTPConfig struct {
	Port int
}

// Addr dirección de escucha para Fiber.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AuthzConfig datos de autorización que son configuración, no lógica:
// el mapeo rol -> permisos por defecto al crear usuarios. El motor de
// autorización recibe el conjunto ya persistido en el usuario; así un
// cambio de política no toca el dominio.
type AuthzConfig struct {
	RolePermissions map[string][]string
}

// Load lee la configuración desde variables de entorno (prefijo ACTIVOS_) y,
// si existe, desde config.yaml en el directorio de trabajo.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ACTIVOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// El archivo es opcional; cualquier otro error sí es fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("leer config: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("db.database_url"),
			Host:        v.GetString("db.host"),
			Port:        v.GetInt("db.port"),
			User:        v.GetString("db.user"),
			Password:    v.GetString("db.password"),
			Name:        v.GetString("db.name"),
			SSLMode:     v.GetString("db.sslmode"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetInt("jwt.expiration_minutes"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		HTTP: HTTPConfig{
			Port: v.GetInt("http.port"),
		},
		Authz: AuthzConfig{
			RolePermissions: v.GetStringMapStringSlice("authz.role_permissions"),
		},
	}
	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("jwt.secret es obligatorio en producción")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "activos-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "activos")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("jwt.expiration_minutes", 60)
	v.SetDefault("jwt.issuer", "activos-api")
	v.SetDefault("http.port", 8080)

	// Permisos por defecto por rol. Son datos, no lógica: el alta de usuarios
	// los copia al conjunto explícito del usuario y de ahí en adelante manda
	// el conjunto persistido.
	v.SetDefault("authz.role_permissions", map[string][]string{
		"viewer":      {},
		"user":        {"asset.read", "movement.request"},
		"manager":     {"asset.read", "asset.write", "movement.request", "movement.approve", "workorder.manage"},
		"admin":       {"asset.read", "asset.write", "asset.dispose", "movement.request", "movement.approve", "workorder.manage", "user.manage"},
		"super_admin": {"asset.read", "asset.write", "asset.dispose", "movement.request", "movement.approve", "workorder.manage", "user.manage", "company.manage"},
	})
}
