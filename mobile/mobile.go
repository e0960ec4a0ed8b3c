//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.towerdefense -o build/android/towerdefense.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/TowerDefense.xcframework ./mobile
package mobile

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/towerdefense/pkg/app"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/embedded"
	"github.com/gonewx/towerdefense/pkg/game"
)

func init() {
	embedded.Init(dataFS)

	level, err := config.LoadLevelConfig("data/levels/level-1.yaml")
	if err != nil {
		log.Warnf("[Mobile] 关卡加载失败，使用内置关卡: %v", err)
		level = nil
	}
	enemyStats, err := config.LoadEnemyStats("data/enemy_stats.yaml")
	if err != nil {
		log.Warnf("[Mobile] 敌人属性加载失败，使用内置属性: %v", err)
		enemyStats = nil
	}
	towerStats, err := config.LoadTowerStats("data/tower_stats.yaml")
	if err != nil {
		log.Warnf("[Mobile] 防御塔属性加载失败，使用内置属性: %v", err)
		towerStats = nil
	}

	storage, err := gdata.Open(gdata.Config{AppName: "towerdefense"})
	if err != nil {
		log.Warnf("[Mobile] 存储不可用: %v", err)
		storage = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Level:      level,
		EnemyStats: enemyStats,
		TowerStats: towerStats,
		Seed:       1,
		Settings:   game.NewSettingsManager(storage),
		Records:    game.NewRecordManager(storage),
	})
	if err != nil {
		log.Fatalf("[Mobile] 游戏初始化失败: %v", err)
	}
	mobile.SetGame(gameApp)
}

// Dummy 空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
