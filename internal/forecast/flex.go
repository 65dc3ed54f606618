package forecast

import (
	"fmt"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/line"
)

// BuildFlexMessage renders a forecast as the bot's flex bubble. displayName
// is the user's registered name for the place, which wins over the API's
// city name.
func BuildFlexMessage(f Forecast, displayName string) line.FlexMessage {
	if displayName == "" {
		displayName = f.CityName
	}

	row := func(label, value string) map[string]any {
		return map[string]any{
			"type": "box", "layout": "baseline", "spacing": "sm",
			"contents": []any{
				map[string]any{"type": "text", "text": label, "color": "#AAAAAA", "size": "sm", "flex": 2},
				map[string]any{"type": "text", "text": value, "wrap": true, "color": "#666666", "size": "sm", "flex": 5},
			},
		}
	}

	bubble := map[string]any{
		"type": "bubble", "direction": "ltr",
		"header": map[string]any{
			"type": "box", "layout": "vertical",
			"contents": []any{
				map[string]any{"type": "text", "text": "今日の天気予報", "weight": "bold", "size": "xl", "color": "#FFFFFF", "align": "center"},
			},
			"backgroundColor": "#00B900", "paddingTop": "12px", "paddingBottom": "12px",
		},
		"body": map[string]any{
			"type": "box", "layout": "vertical", "spacing": "md",
			"contents": []any{
				map[string]any{
					"type": "box", "layout": "vertical",
					"contents": []any{
						map[string]any{"type": "text", "text": displayName, "size": "lg", "weight": "bold", "color": "#00B900"},
						map[string]any{"type": "text", "text": f.Date, "size": "sm", "color": "#AAAAAA"},
					},
				},
				map[string]any{"type": "separator", "margin": "md"},
				map[string]any{
					"type": "box", "layout": "vertical", "margin": "lg", "spacing": "sm",
					"contents": []any{
						row("天気", f.Telop),
						row("最高気温", fmt.Sprintf("%s°C", f.TempMax)),
						row("最低気温", fmt.Sprintf("%s°C", f.TempMin)),
						row("降水確率", f.ChanceOfRain),
					},
				},
			},
		},
	}

	return line.NewFlexMessage(fmt.Sprintf("%sの天気予報", displayName), bubble)
}
