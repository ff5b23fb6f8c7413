package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"factory/internal/core/domain/model/plant"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPPort  string `mapstructure:"http_port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Store     string `mapstructure:"store"`

	DB         DBConfig         `mapstructure:"db"`
	Services   ServicesConfig   `mapstructure:"services"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Masterdata MasterdataConfig `mapstructure:"masterdata"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Jobs       JobsConfig       `mapstructure:"jobs"`
	Plant      PlantConfig      `mapstructure:"plant"`
}

type DBConfig struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SslMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// DSN is the libpq style connection string for the gorm postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type ServicesConfig struct {
	InventoryURL  string        `mapstructure:"inventory_url"`
	SchedulingURL string        `mapstructure:"scheduling_url"`
	MasterdataURL string        `mapstructure:"masterdata_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MasterdataConfig struct {
	MemoryTTL time.Duration `mapstructure:"memory_ttl"`
	SharedTTL time.Duration `mapstructure:"shared_ttl"`
}

type KafkaConfig struct {
	Brokers  string `mapstructure:"brokers"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
}

// BrokerList splits the comma separated broker addresses; empty means no Kafka.
func (c KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, broker := range strings.Split(c.Brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

type JobsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// PlantConfig mirrors plant.Settings in a flat, env friendly form.
type PlantConfig struct {
	LotSizeThreshold   int `mapstructure:"lot_size_threshold"`
	ProductionFrom     int `mapstructure:"production_from"`
	ProductionTo       int `mapstructure:"production_to"`
	AssemblyFrom       int `mapstructure:"assembly_from"`
	AssemblyTo         int `mapstructure:"assembly_to"`
	InjectionMolding   int `mapstructure:"injection_molding"`
	PartsPreProduction int `mapstructure:"parts_pre_production"`
	PartFinishing      int `mapstructure:"part_finishing"`
	GearAssembly       int `mapstructure:"gear_assembly"`
	MotorAssembly      int `mapstructure:"motor_assembly"`
	FinalAssembly      int `mapstructure:"final_assembly"`
	PlantWarehouse     int `mapstructure:"plant_warehouse"`
	ModulesDepot       int `mapstructure:"modules_depot"`
	PartsSupplyDepot   int `mapstructure:"parts_supply_depot"`
}

func (c PlantConfig) Settings(callTimeout time.Duration) plant.Settings {
	return plant.Settings{
		LotSizeThreshold: c.LotSizeThreshold,
		ProductionRange:  plant.Range{From: plant.WorkstationID(c.ProductionFrom), To: plant.WorkstationID(c.ProductionTo)},
		AssemblyRange:    plant.Range{From: plant.WorkstationID(c.AssemblyFrom), To: plant.WorkstationID(c.AssemblyTo)},
		Workstations: map[plant.Kind]plant.WorkstationID{
			plant.InjectionMolding:   plant.WorkstationID(c.InjectionMolding),
			plant.PartsPreProduction: plant.WorkstationID(c.PartsPreProduction),
			plant.PartFinishing:      plant.WorkstationID(c.PartFinishing),
			plant.GearAssembly:       plant.WorkstationID(c.GearAssembly),
			plant.MotorAssembly:      plant.WorkstationID(c.MotorAssembly),
			plant.FinalAssembly:      plant.WorkstationID(c.FinalAssembly),
		},
		PlantWarehouse:   plant.WorkstationID(c.PlantWarehouse),
		ModulesDepot:     plant.WorkstationID(c.ModulesDepot),
		PartsSupplyDepot: plant.WorkstationID(c.PartsSupplyDepot),
		CallTimeout:      callTimeout,
	}
}

// PlantConfig validates the plant layout.
func (c Config) PlantConfig() (plant.Config, error) {
	return plant.NewConfig(c.Plant.Settings(c.Services.Timeout))
}

func setDefaults(v *viper.Viper) {
	defaults := plant.DefaultSettings()

	v.SetDefault("http_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("store", StorePostgres)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "factory")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("services.inventory_url", "http://localhost:8081")
	v.SetDefault("services.scheduling_url", "http://localhost:8082")
	v.SetDefault("services.masterdata_url", "http://localhost:8083")
	v.SetDefault("services.timeout", defaults.CallTimeout)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("masterdata.memory_ttl", time.Minute)
	v.SetDefault("masterdata.shared_ttl", 12*time.Hour)

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "factory.orders")
	v.SetDefault("kafka.client_id", "factory")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.schedule", "@every 1m")

	v.SetDefault("plant.lot_size_threshold", defaults.LotSizeThreshold)
	v.SetDefault("plant.production_from", int(defaults.ProductionRange.From))
	v.SetDefault("plant.production_to", int(defaults.ProductionRange.To))
	v.SetDefault("plant.assembly_from", int(defaults.AssemblyRange.From))
	v.SetDefault("plant.assembly_to", int(defaults.AssemblyRange.To))
	v.SetDefault("plant.injection_molding", int(defaults.Workstations[plant.InjectionMolding]))
	v.SetDefault("plant.parts_pre_production", int(defaults.Workstations[plant.PartsPreProduction]))
	v.SetDefault("plant.part_finishing", int(defaults.Workstations[plant.PartFinishing]))
	v.SetDefault("plant.gear_assembly", int(defaults.Workstations[plant.GearAssembly]))
	v.SetDefault("plant.motor_assembly", int(defaults.Workstations[plant.MotorAssembly]))
	v.SetDefault("plant.final_assembly", int(defaults.Workstations[plant.FinalAssembly]))
	v.SetDefault("plant.plant_warehouse", int(defaults.PlantWarehouse))
	v.SetDefault("plant.modules_depot", int(defaults.ModulesDepot))
	v.SetDefault("plant.parts_supply_depot", int(defaults.PartsSupplyDepot))
}

// LoadConfig reads envFile (when present) into the environment and binds every key to
// its upper case env variable, e.g. db.host to DB_HOST and plant.modules_depot to
// PLANT_MODULES_DEPOT.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Store != StoreMemory && cfg.Store != StorePostgres {
		return Config{}, fmt.Errorf("unknown store %q, want %s or %s", cfg.Store, StoreMemory, StorePostgres)
	}
	return cfg, nil
}
