package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Annotation store
		"Annotation added at frame %d: %s (%s)": "フレーム %d に注釈を追加: %s (%s)",
		"Saved %d annotations to %s":            "%d 件の注釈を %s に保存しました",

		// Session
		"Cannot load annotations: %s":               "注釈を読み込めません: %s",
		"Failed to save %d pending annotations: %s": "未保存の注釈 %d 件を保存できませんでした: %s",
		"Flushed %d annotations on close":           "終了時に %d 件の注釈を保存しました",

		// Playback
		"Playback %s at frame %d":             "再生状態 %s (フレーム %d)",
		"End of stream, rewound to frame %d":  "動画の終端に達したためフレーム %d に戻りました",
		"Seek to %d ignored, outside [0, %d)": "シーク先 %d は範囲 [0, %d) 外のため無視しました",

		// Video source
		"Opened %s: %s": "%s を開きました: %s",
		"Container probe failed, trying ffprobe: %s": "コンテナ解析に失敗したため ffprobe を使用します: %s",
		"Decoding frame %d at %.3fs":                 "フレーム %d をデコード中 (%.3f 秒)",

		// Overlay
		"Banner overlay failed, using text: %s": "バナーの描画に失敗したためテキストで表示します: %s",
		"Banner rendered: %dx%d":                "バナーを描画しました: %dx%d",

		// Snapshot export
		"Exporting %d frames with %d workers":  "%d フレームを %d ワーカーで書き出し中",
		"Exported %d frames to %s":             "%d フレームを %s に書き出しました",
		"Writing %s":                           "%s を書き込み中",
		"Skipping annotation with position %q": "位置 %q の注釈をスキップします",
	})
}
