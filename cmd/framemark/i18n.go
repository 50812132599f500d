// Package main provides localization for the framemark CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command and global flags
		"Annotate video frames with labels and teams": "動画のフレームにラベルとチームの注釈を付けます",
		"YAML configuration file":                     "YAML 設定ファイル",
		"Log level (debug, info, warn, error)":        "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                     "ログ出力をすべて抑制",
		"Path to the ffmpeg executable":               "ffmpeg 実行ファイルのパス",
		"Path to the ffprobe executable":              "ffprobe 実行ファイルのパス",

		// open
		"Play a video and annotate frames interactively": "動画を再生しながら対話的に注釈を付けます",
		"When to write the sidecar (immediate, batch)":   "注釈ファイルを書き込むタイミング (immediate, batch)",
		"Frames to skip per seek":                        "1 回のシークで移動するフレーム数",
		"Overlay style (text, banner)":                   "オーバーレイの表示形式 (text, banner)",
		"Preview image path":                             "プレビュー画像のパス",
		"Do not write preview images":                    "プレビュー画像を書き出さない",
		"Annotations are in %s":                          "注釈は %s に保存されています",

		// add
		"Add one annotation without opening the player": "プレイヤーを開かずに注釈を 1 件追加します",
		"Annotation label":                                  "注釈のラベル",
		"Team name":                                         "チーム名",
		"Frame index":                                       "フレーム番号",
		"Time code HH:MM:SS, converted to a frame":          "タイムコード HH:MM:SS (フレームに変換)",
		"Frame rate; read from the video when omitted":      "フレームレート (省略時は動画から取得)",
		"Specify exactly one of --frame or --at":            "--frame と --at のどちらか一方を指定してください",
		"Frame %d is past the end of the video (%d frames)": "フレーム %d は動画の範囲外です (%d フレーム)",
		"Annotated frame %s at %s: %s":                      "フレーム %s (%s) に注釈: %s",

		// list
		"Show the annotations of a video":   "動画の注釈を表示します",
		"Write a Markdown report":           "Markdown 形式のレポートを出力",
		"Write to a file instead of stdout": "標準出力の代わりにファイルへ書き込む",
		"Report written to %s":              "レポートを %s に書き込みました",

		// snapshot
		"Export every annotated frame as an image":          "注釈の付いたフレームを画像として書き出します",
		"Draw the annotation text on the images":            "画像に注釈のテキストを描画",
		"Output directory (default: the annotation folder)": "出力先ディレクトリ (既定: 注釈フォルダ)",
		"Image format (png, jpeg)":                          "画像形式 (png, jpeg)",
		"Parallel decoders":                                 "並列デコード数",
		"No annotations in %s":                              "%s に注釈はありません",

		// timecode
		"Convert a frame index to HH:MM:SS": "フレーム番号を HH:MM:SS に変換します",
		"Frame rate":                        "フレームレート",
		"Missing frame index":               "フレーム番号を指定してください",
		"Invalid frame index %q":            "フレーム番号 %q が不正です",

		// Errors
		"Missing video path":        "動画ファイルのパスを指定してください",
		"Cannot load config: %s":    "設定を読み込めません: %s",
		"Invalid configuration: %s": "設定が不正です: %s",
		"Cannot open video %s: %s":  "動画 %s を開けません: %s",
		"Cannot close video %s: %s": "動画 %s を閉じられません: %s",

		// Report headings
		"Annotation Report":   "注釈レポート",
		"Video":               "動画",
		"Item":                "項目",
		"Value":               "値",
		"Name":                "名前",
		"Path":                "パス",
		"YouTube":             "YouTube",
		"Frame Rate":          "フレームレート",
		"Frames":              "フレーム数",
		"Annotations":         "注釈",
		"annotations":         "件の注釈",
		"No annotations":      "注釈はありません",
		"Time":                "時刻",
		"Frame":               "フレーム",
		"Label":               "ラベル",
		"Team":                "チーム",
		"By Team":             "チーム別",
		"By Label":            "ラベル別",
		"Count":               "件数",
		"Generated at":        "生成日時",
		"2006-01-02 15:04:05": "2006年01月02日 15:04:05",
	})
}
