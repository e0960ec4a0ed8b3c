package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/app"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/embedded"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/scenes"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
)

const appName = "towerdefense"

var (
	verbose   bool
	seed      uint64
	levelPath string
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A small tower defense game",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetPrefix(appName)
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		embedded.Init(dataFS)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runPlay(false)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Run: func(cmd *cobra.Command, args []string) {
		mute, _ := cmd.Flags().GetBool("mute")
		runPlay(mute)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the level headless and print the result",
	Run: func(cmd *cobra.Command, args []string) {
		towerName, _ := cmd.Flags().GetString("tower")
		maxTime, _ := cmd.Flags().GetFloat64("max-time")
		record, _ := cmd.Flags().GetBool("record")
		if err := runSimulate(towerName, maxTime, record); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	},
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show saved run records",
	Run: func(cmd *cobra.Command, args []string) {
		records := game.NewRecordManager(openStorage())
		all := records.All()
		if len(all) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}
		fmt.Printf("%-12s %6s %6s %10s\n", "LEVEL", "WINS", "LOSSES", "BEST LIVES")
		for _, r := range all {
			fmt.Printf("%-12s %6d %6d %10d\n", r.LevelID, r.Wins, r.Losses, r.BestLives)
		}
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the built-in levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := config.LoadLevels(config.LevelsGlob)
		if err != nil {
			return err
		}
		for _, level := range levels {
			fmt.Printf("%-12s %-20s waves %d, slots %d, obstacles %d\n",
				level.ID, level.Name, len(level.Waves), len(level.TowerSlots), len(level.Obstacles))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "random seed for spawn jitter")
	rootCmd.PersistentFlags().StringVar(&levelPath, "level", "data/levels/level-1.yaml", "level file inside the embedded data")

	playCmd.Flags().Bool("mute", false, "disable audio")

	simulateCmd.Flags().String("tower", "", "build this tower type on every free slot whenever gold allows (Wood, Rock)")
	simulateCmd.Flags().Float64("max-time", 600, "give up after this many simulated seconds")
	simulateCmd.Flags().Bool("record", false, "save the result to the run records")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(levelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTables 从嵌入数据加载关卡与属性表
func loadTables() (*config.LevelConfig, *config.EnemyStatsConfig, *config.TowerStatsConfig, error) {
	enemyStats, err := config.LoadEnemyStats("data/enemy_stats.yaml")
	if err != nil {
		return nil, nil, nil, err
	}
	towerStats, err := config.LoadTowerStats("data/tower_stats.yaml")
	if err != nil {
		return nil, nil, nil, err
	}
	if !embedded.Exists(levelPath) {
		return nil, nil, nil, fmt.Errorf("level %s not found, run the levels command to list them", levelPath)
	}
	level, err := config.LoadLevelConfig(levelPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return level, enemyStats, towerStats, nil
}

// openStorage 打开本地存储，失败时返回 nil（设置与记录只保存在内存中）
func openStorage() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warnf("[Main] Failed to open storage: %v", err)
		return nil
	}
	return m
}

func runPlay(mute bool) {
	level, enemyStats, towerStats, err := loadTables()
	if err != nil {
		log.Fatalf("[Main] 加载配置失败: %v", err)
	}
	storage := openStorage()

	application, err := app.NewApp(app.Config{
		Level:      level,
		EnemyStats: enemyStats,
		TowerStats: towerStats,
		Seed:       seed,
		Settings:   game.NewSettingsManager(storage),
		Records:    game.NewRecordManager(storage),
		Mute:       mute,
	})
	if err != nil {
		log.Fatalf("[Main] 初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Tower Defense - %s", level.Name))
	if err := ebiten.RunGame(application); err != nil {
		log.Fatal("[Main] 运行失败", "err", err)
	}
}

func runSimulate(towerName string, maxTime float64, record bool) error {
	level, enemyStats, towerStats, err := loadTables()
	if err != nil {
		return err
	}

	autoTower, autoCost := types.TowerUnknown, 0
	if towerName != "" {
		if autoTower, err = types.ParseTowerType(towerName); err != nil {
			return err
		}
		stats, ok := towerStats.Get(autoTower)
		if !ok {
			return fmt.Errorf("tower %s: %w", autoTower, game.ErrUnknownTowerType)
		}
		autoCost = stats.Cost
	}

	cfg := scenes.Config{
		Level:      level,
		EnemyStats: enemyStats,
		TowerStats: towerStats,
		Seed:       seed,
	}
	if record {
		cfg.Recorder = game.NewRecordManager(openStorage())
	}
	scene := scenes.NewGameScene(cfg)

	bus := scene.Events()
	bus.Subscribe(game.EventWaveStarted, game.ListenerFunc(func(e game.Event) {
		log.Infof("[Simulate] %s", scene.HUD().WaveText())
	}))
	bus.Subscribe(game.EventLeaked, game.ListenerFunc(func(e game.Event) {
		log.Infof("[Simulate] %s leaked, lives %d", e.EnemyType, scene.HUD().Lives)
	}))
	bus.Subscribe(game.EventTowerPlaced, game.ListenerFunc(func(e game.Event) {
		log.Infof("[Simulate] %s built at (%.0f, %.0f)", e.TowerType, e.Position.X, e.Position.Y)
	}))

	scene.Tap()
	elapsed := 0.0
	for scene.State() == game.StateActive && elapsed < maxTime {
		if autoTower != types.TowerUnknown {
			for _, slot := range scene.FreeSlots() {
				if scene.HUD().Gold < autoCost || scene.AddTower(autoTower, slot) != nil {
					break
				}
			}
		}
		scene.Update(app.FrameTime)
		scene.Events().Drain()
		elapsed += app.FrameTime
	}

	hud := scene.HUD()
	fmt.Printf("level %s: %s after %.1fs, lives %d, gold %d, %s\n",
		level.ID, scene.State(), elapsed, hud.Lives, hud.Gold, hud.WaveText())
	return nil
}
