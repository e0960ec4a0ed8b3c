package app

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频采样率
const SampleRate = 48000

// note 一个音符：频率（Hz）与时长（秒），频率为 0 表示休止
type note struct {
	freq float64
	dur  float64
}

var soundNotes = map[string][]note{
	game.SoundNewWave:      {{523.25, 0.12}, {659.25, 0.12}, {783.99, 0.2}},
	game.SoundLifeLost:     {{220, 0.18}, {174.61, 0.3}},
	game.SoundYouWin:       {{523.25, 0.15}, {659.25, 0.15}, {783.99, 0.15}, {1046.5, 0.45}},
	game.SoundYouLose:      {{392, 0.2}, {311.13, 0.2}, {261.63, 0.6}},
	game.SoundBuildTower:   {{440, 0.08}, {880, 0.12}},
	game.SoundNoBuildTower: {{130.81, 0.18}},
	game.SoundMenu:         {{660, 0.05}},
}

// deadNotes 敌人体型越大音调越低
var deadNotes = map[types.EnemyType][]note{
	types.EnemyLight:  {{880, 0.06}, {660, 0.1}},
	types.EnemyMedium: {{740, 0.06}, {554.37, 0.1}},
	types.EnemyHeavy:  {{196, 0.15}, {98, 0.35}},
}

var musicNotes = []note{
	{261.63, 0.25}, {329.63, 0.25}, {392, 0.25}, {329.63, 0.25},
	{220, 0.25}, {261.63, 0.25}, {329.63, 0.25}, {0, 0.25},
}

// synthesize 生成 16 位小端立体声 PCM
func synthesize(notes []note, amplitude float64) []byte {
	var buf bytes.Buffer
	for _, n := range notes {
		samples := int(n.dur * SampleRate)
		for i := 0; i < samples; i++ {
			v := 0.0
			if n.freq > 0 {
				// 线性淡出，避免音符结尾爆音
				envelope := 1 - float64(i)/float64(samples)
				v = math.Sin(2*math.Pi*n.freq*float64(i)/SampleRate) * envelope * amplitude
			}
			s := int16(v * math.MaxInt16)
			_ = binary.Write(&buf, binary.LittleEndian, s)
			_ = binary.Write(&buf, binary.LittleEndian, s)
		}
	}
	return buf.Bytes()
}

// ToneAudio 用合成音代替音频资源播放音效与背景音乐
// 音量与开关取自 SettingsManager
type ToneAudio struct {
	context  *audio.Context
	settings *game.SettingsManager
	sounds   map[string][]byte
	music    *audio.Player
}

// NewToneAudio 预先合成全部音效
func NewToneAudio(context *audio.Context, settings *game.SettingsManager) *ToneAudio {
	ta := &ToneAudio{
		context:  context,
		settings: settings,
		sounds:   make(map[string][]byte, len(soundNotes)+len(deadNotes)),
	}
	for name, notes := range soundNotes {
		ta.sounds[name] = synthesize(notes, 0.4)
	}
	for enemyType, notes := range deadNotes {
		ta.sounds[enemyType.DeadSound()] = synthesize(notes, 0.4)
	}
	return ta
}

// PlaySound 播放音效，未知名称只记录日志
func (ta *ToneAudio) PlaySound(name string) {
	settings := ta.settings.GetSettings()
	if !settings.SoundEnabled {
		return
	}
	data, ok := ta.sounds[name]
	if !ok {
		log.Debugf("[ToneAudio] 未知音效 %s", name)
		return
	}
	player := ta.context.NewPlayerFromBytes(data)
	player.SetVolume(settings.SoundVolume)
	player.Play()
}

// PlayMusic 循环播放背景音乐
func (ta *ToneAudio) PlayMusic() {
	settings := ta.settings.GetSettings()
	if !settings.MusicEnabled {
		return
	}
	if ta.music == nil {
		data := synthesize(musicNotes, 0.2)
		loop := audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data)))
		player, err := ta.context.NewPlayer(loop)
		if err != nil {
			log.Warnf("[ToneAudio] Failed to create music player: %v", err)
			return
		}
		ta.music = player
	}
	ta.music.SetVolume(settings.MusicVolume)
	if err := ta.music.Rewind(); err != nil {
		log.Warnf("[ToneAudio] Failed to rewind music: %v", err)
	}
	ta.music.Play()
}

// StopMusic 停止背景音乐
func (ta *ToneAudio) StopMusic() {
	if ta.music != nil {
		ta.music.Pause()
	}
}

// IsMusicPlaying 背景音乐是否正在播放
func (ta *ToneAudio) IsMusicPlaying() bool {
	return ta.music != nil && ta.music.IsPlaying()
}

// ApplySettings 设置变化后更新正在播放的音乐
func (ta *ToneAudio) ApplySettings() {
	if ta.music == nil {
		return
	}
	settings := ta.settings.GetSettings()
	ta.music.SetVolume(settings.MusicVolume)
	if !settings.MusicEnabled {
		ta.music.Pause()
	}
}
