package catalog

type prefectureEntry struct {
	Name   string
	Cities []City
}

type areaEntry struct {
	Name        string
	Prefectures []prefectureEntry
}

// areaTable is the embedded place hierarchy with livedoor-compatible station
// codes. Order matters: it drives menu presentation.
var areaTable = []areaEntry{
	{Name: "北海道", Prefectures: []prefectureEntry{
		{Name: "道北", Cities: []City{{"稚内", "011000"}, {"旭川", "012010"}, {"留萌", "012020"}}},
		{Name: "道東", Cities: []City{{"網走", "013010"}, {"北見", "013020"}, {"紋別", "013030"}, {"根室", "014010"}, {"釧路", "014020"}, {"帯広", "014030"}}},
		{Name: "道央", Cities: []City{{"札幌", "016010"}, {"岩見沢", "016020"}, {"倶知安", "016030"}}},
		{Name: "道南", Cities: []City{{"室蘭", "015010"}, {"浦河", "015020"}, {"函館", "017010"}, {"江差", "017020"}}},
	}},
	{Name: "東北", Prefectures: []prefectureEntry{
		{Name: "青森県", Cities: []City{{"青森", "020010"}, {"むつ", "020020"}, {"八戸", "020030"}}},
		{Name: "岩手県", Cities: []City{{"盛岡", "030010"}, {"宮古", "030020"}, {"大船渡", "030030"}}},
		{Name: "宮城県", Cities: []City{{"仙台", "040010"}, {"白石", "040020"}}},
		{Name: "秋田県", Cities: []City{{"秋田", "050010"}, {"横手", "050020"}}},
		{Name: "山形県", Cities: []City{{"山形", "060010"}, {"米沢", "060020"}, {"酒田", "060030"}, {"新庄", "060040"}}},
		{Name: "福島県", Cities: []City{{"福島", "070010"}, {"小名浜", "070020"}, {"若松", "070030"}}},
	}},
	{Name: "関東", Prefectures: []prefectureEntry{
		{Name: "茨城県", Cities: []City{{"水戸", "080010"}, {"土浦", "080020"}}},
		{Name: "栃木県", Cities: []City{{"宇都宮", "090010"}, {"大田原", "090020"}}},
		{Name: "群馬県", Cities: []City{{"前橋", "100010"}, {"みなかみ", "100020"}}},
		{Name: "埼玉県", Cities: []City{{"さいたま", "110010"}, {"熊谷", "110020"}, {"秩父", "110030"}}},
		{Name: "千葉県", Cities: []City{{"千葉", "120010"}, {"銚子", "120020"}, {"館山", "120030"}}},
		{Name: "東京都", Cities: []City{{"東京", "130010"}, {"大島", "130020"}, {"八丈島", "130030"}, {"父島", "130040"}}},
		{Name: "神奈川県", Cities: []City{{"横浜", "140010"}, {"小田原", "140020"}}},
	}},
	{Name: "甲信", Prefectures: []prefectureEntry{
		{Name: "新潟県", Cities: []City{{"新潟", "150010"}, {"長岡", "150020"}, {"高田", "150030"}, {"相川", "150040"}}},
		{Name: "山梨県", Cities: []City{{"甲府", "170010"}, {"河口湖", "170020"}}},
		{Name: "長野県", Cities: []City{{"長野", "180010"}, {"松本", "180020"}, {"飯田", "180030"}}},
	}},
	{Name: "北陸", Prefectures: []prefectureEntry{
		{Name: "富山県", Cities: []City{{"富山", "160010"}, {"伏木", "160020"}}},
		{Name: "石川県", Cities: []City{{"金沢", "190010"}, {"輪島", "190020"}}},
		{Name: "福井県", Cities: []City{{"福井", "200010"}}},
	}},
	{Name: "東海", Prefectures: []prefectureEntry{
		{Name: "愛知県", Cities: []City{{"名古屋", "230010"}, {"豊橋", "230020"}}},
		{Name: "岐阜県", Cities: []City{{"岐阜", "210010"}, {"高山", "210020"}}},
		{Name: "静岡県", Cities: []City{{"静岡", "220010"}, {"網代", "220020"}, {"三島", "220030"}, {"浜松", "220040"}}},
		{Name: "三重県", Cities: []City{{"津", "240010"}}},
	}},
	{Name: "近畿", Prefectures: []prefectureEntry{
		{Name: "大阪府", Cities: []City{{"大阪", "270000"}}},
		{Name: "兵庫県", Cities: []City{{"神戸", "280010"}, {"豊岡", "280020"}}},
		{Name: "京都府", Cities: []City{{"京都", "260010"}, {"舞鶴", "260020"}}},
		{Name: "滋賀県", Cities: []City{{"大津", "250010"}, {"彦根", "250020"}}},
		{Name: "奈良県", Cities: []City{{"奈良", "290010"}}},
		{Name: "和歌山県", Cities: []City{{"和歌山", "300010"}}},
	}},
	{Name: "中国", Prefectures: []prefectureEntry{
		{Name: "鳥取県", Cities: []City{{"鳥取", "310010"}}},
		{Name: "島根県", Cities: []City{{"松江", "320010"}, {"浜田", "320020"}, {"西郷", "320030"}}},
		{Name: "岡山県", Cities: []City{{"岡山", "330010"}}},
		{Name: "広島県", Cities: []City{{"広島", "340010"}}},
		{Name: "山口県", Cities: []City{{"山口", "350010"}}},
	}},
	{Name: "四国", Prefectures: []prefectureEntry{
		{Name: "徳島県", Cities: []City{{"徳島", "360010"}}},
		{Name: "香川県", Cities: []City{{"高松", "370010"}}},
		{Name: "愛媛県", Cities: []City{{"松山", "380010"}}},
		{Name: "高知県", Cities: []City{{"高知", "390010"}}},
	}},
	{Name: "九州北部", Prefectures: []prefectureEntry{
		{Name: "福岡県", Cities: []City{{"福岡", "400010"}, {"八幡", "400020"}, {"飯塚", "400030"}, {"久留米", "400040"}}},
		{Name: "長崎県", Cities: []City{{"長崎", "420010"}, {"佐世保", "420020"}, {"厳原", "420030"}}},
		{Name: "佐賀県", Cities: []City{{"佐賀", "410010"}}},
		{Name: "熊本県", Cities: []City{{"熊本", "430010"}, {"阿蘇乙姫", "430020"}, {"牛深", "430030"}}},
		{Name: "大分県", Cities: []City{{"大分", "440010"}, {"中津", "440020"}, {"日田", "440030"}, {"佐伯", "440040"}}},
	}},
	{Name: "九州南部・奄美", Prefectures: []prefectureEntry{
		{Name: "宮崎県", Cities: []City{{"宮崎", "450010"}, {"延岡", "450020"}, {"都城", "450030"}, {"高千穂", "450040"}}},
		{Name: "鹿児島県", Cities: []City{{"鹿児島", "460010"}, {"鹿屋", "460020"}, {"種子島", "460030"}, {"名瀬", "460040"}}},
	}},
	{Name: "沖縄", Prefectures: []prefectureEntry{
		{Name: "沖縄県", Cities: []City{{"那覇", "471010"}, {"名護", "471020"}, {"久米島", "471030"}, {"南大東", "472000"}, {"宮古島", "473000"}, {"石垣島", "474010"}, {"与那国島", "474020"}}},
	}},
}
