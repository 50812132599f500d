package shell

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"playing": "再生中",
		"paused":  "一時停止",
		"Frame":   "フレーム",
		"Time":    "時刻",
		"Pending": "未保存",
		"Sidecar": "注釈ファイル",
		"Preview": "プレビュー",

		"End of video, rewound to the start": "動画の終端に達したため先頭に戻りました",
		"Already at the edge of the video":   "これ以上シークできません",
		"Please enter both label and team":   "ラベルとチームの両方を入力してください",
		"Annotation kept unsaved: %s":        "注釈は未保存のままです: %s",
		"Annotated frame %s at %s: %s":       "フレーム %s (%s) に注釈: %s",
		"Nothing to save":                    "保存する注釈はありません",
		"Saved %d annotations":               "%d 件の注釈を保存しました",
	})
}
