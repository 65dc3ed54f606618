package station

// DefaultStations is the curated set of stations used to reconcile geocoded
// coordinates against forecast points. Codes match the catalog's station codes.
var DefaultStations = []Station{
	{Code: "016010", Name: "札幌", Latitude: 43.062, Longitude: 141.354},
	{Code: "012010", Name: "旭川", Latitude: 43.771, Longitude: 142.365},
	{Code: "014020", Name: "釧路", Latitude: 42.985, Longitude: 144.382},
	{Code: "020010", Name: "青森", Latitude: 40.822, Longitude: 140.747},
	{Code: "040010", Name: "仙台", Latitude: 38.268, Longitude: 140.872},
	{Code: "150010", Name: "新潟", Latitude: 37.902, Longitude: 139.023},
	{Code: "190010", Name: "金沢", Latitude: 36.594, Longitude: 136.626},
	{Code: "170010", Name: "甲府", Latitude: 35.664, Longitude: 138.568},
	{Code: "180010", Name: "長野", Latitude: 36.651, Longitude: 138.181},
	{Code: "130010", Name: "東京", Latitude: 35.689, Longitude: 139.692},
	{Code: "140010", Name: "横浜", Latitude: 35.444, Longitude: 139.638},
	{Code: "220010", Name: "静岡", Latitude: 34.977, Longitude: 138.383},
	{Code: "230010", Name: "名古屋", Latitude: 35.170, Longitude: 136.906},
	{Code: "260010", Name: "京都", Latitude: 35.021, Longitude: 135.754},
	{Code: "270000", Name: "大阪", Latitude: 34.686, Longitude: 135.520},
	{Code: "280010", Name: "神戸", Latitude: 34.691, Longitude: 135.183},
	{Code: "340010", Name: "広島", Latitude: 34.396, Longitude: 132.459},
	{Code: "320010", Name: "松江", Latitude: 35.472, Longitude: 133.050},
	{Code: "370010", Name: "高松", Latitude: 34.340, Longitude: 134.043},
	{Code: "380010", Name: "松山", Latitude: 33.839, Longitude: 132.765},
	{Code: "400010", Name: "福岡", Latitude: 33.590, Longitude: 130.402},
	{Code: "430010", Name: "熊本", Latitude: 32.803, Longitude: 130.708},
	{Code: "460010", Name: "鹿児島", Latitude: 31.560, Longitude: 130.558},
	{Code: "471010", Name: "那覇", Latitude: 26.212, Longitude: 127.679},
}
