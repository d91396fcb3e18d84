package weatherapi

type apiCondition struct {
	Text string `json:"text"`
}

type apiCurrent struct {
	TempC      float64      `json:"temp_c"`
	FeelslikeC float64      `json:"feelslike_c"`
	Cloud      int          `json:"cloud"`
	Humidity   int          `json:"humidity"`
	WindKph    float64      `json:"wind_kph"`
	PressureMb float64      `json:"pressure_mb"`
	Condition  apiCondition `json:"condition"`
}

type apiForecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MaxtempC          float64      `json:"maxtemp_c"`
		MintempC          float64      `json:"mintemp_c"`
		DailyChanceOfRain int          `json:"daily_chance_of_rain"`
		Condition         apiCondition `json:"condition"`
	} `json:"day"`
	Astro *struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"astro"`
	Hour []struct {
		TimeEpoch int64        `json:"time_epoch"`
		TempC     float64      `json:"temp_c"`
		Condition apiCondition `json:"condition"`
	} `json:"hour"`
}

type apiResponse struct {
	Current  *apiCurrent `json:"current"`
	Forecast *struct {
		Forecastday []apiForecastDay `json:"forecastday"`
	} `json:"forecast"`
}
