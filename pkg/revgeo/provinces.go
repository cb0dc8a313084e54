package revgeo

// provinceCentroid is one entry of the embedded province table.
type provinceCentroid struct {
	name string
	lat  float64
	lng  float64
}

// thaiProvinces lists all 77 Thai provinces with approximate centroids,
// close enough for nearest-centroid resolution at province scale.
var thaiProvinces = []provinceCentroid{
	// Central
	{"Bangkok", 13.7563, 100.5018},
	{"Samut Prakan", 13.5991, 100.5998},
	{"Nonthaburi", 13.8622, 100.5144},
	{"Pathum Thani", 14.0208, 100.5250},
	{"Phra Nakhon Si Ayutthaya", 14.3692, 100.5877},
	{"Ang Thong", 14.5896, 100.4550},
	{"Lopburi", 14.7995, 100.6534},
	{"Sing Buri", 14.8879, 100.4049},
	{"Chai Nat", 15.1852, 100.1251},
	{"Saraburi", 14.5289, 100.9101},
	{"Nakhon Pathom", 13.8199, 100.0622},
	{"Samut Sakhon", 13.5475, 100.2744},
	{"Samut Songkhram", 13.4098, 100.0023},
	{"Suphan Buri", 14.4745, 100.1177},
	{"Nakhon Nayok", 14.2069, 101.2131},
	// East
	{"Chonburi", 13.3611, 100.9847},
	{"Rayong", 12.6814, 101.2789},
	{"Chanthaburi", 12.6113, 102.1039},
	{"Trat", 12.2428, 102.5175},
	{"Chachoengsao", 13.6904, 101.0780},
	{"Prachin Buri", 14.0479, 101.3686},
	{"Sa Kaeo", 13.8240, 102.0645},
	// North
	{"Chiang Mai", 18.7883, 98.9853},
	{"Lamphun", 18.5745, 99.0087},
	{"Lampang", 18.2888, 99.4908},
	{"Uttaradit", 17.6200, 100.0993},
	{"Phrae", 18.1445, 100.1403},
	{"Nan", 18.7756, 100.7730},
	{"Phayao", 19.1664, 99.9003},
	{"Chiang Rai", 19.9105, 99.8406},
	{"Mae Hong Son", 19.3020, 97.9654},
	{"Nakhon Sawan", 15.7047, 100.1372},
	{"Uthai Thani", 15.3835, 100.0246},
	{"Kamphaeng Phet", 16.4828, 99.5227},
	{"Tak", 16.8840, 99.1259},
	{"Sukhothai", 17.0078, 99.8237},
	{"Phitsanulok", 16.8211, 100.2659},
	{"Phichit", 16.4429, 100.3487},
	{"Phetchabun", 16.4190, 101.1591},
	// Northeast
	{"Nakhon Ratchasima", 14.9799, 102.0978},
	{"Buriram", 14.9930, 103.1029},
	{"Surin", 14.8818, 103.4936},
	{"Sisaket", 15.1186, 104.3220},
	{"Ubon Ratchathani", 15.2287, 104.8565},
	{"Yasothon", 15.7921, 104.1452},
	{"Chaiyaphum", 15.8068, 102.0317},
	{"Amnat Charoen", 15.8656, 104.6258},
	{"Bueng Kan", 18.3609, 103.6466},
	{"Nong Bua Lamphu", 17.2218, 102.4260},
	{"Khon Kaen", 16.4322, 102.8236},
	{"Udon Thani", 17.4138, 102.7872},
	{"Loei", 17.4860, 101.7223},
	{"Nong Khai", 17.8783, 102.7413},
	{"Maha Sarakham", 16.1851, 103.3027},
	{"Roi Et", 16.0538, 103.6520},
	{"Kalasin", 16.4315, 103.5059},
	{"Sakon Nakhon", 17.1545, 104.1348},
	{"Nakhon Phanom", 17.3948, 104.7692},
	{"Mukdahan", 16.5435, 104.7235},
	// West
	{"Ratchaburi", 13.5283, 99.8134},
	{"Kanchanaburi", 14.0228, 99.5328},
	{"Phetchaburi", 13.1119, 99.9399},
	{"Prachuap Khiri Khan", 11.8126, 99.7957},
	// South
	{"Chumphon", 10.4930, 99.1800},
	{"Ranong", 9.9529, 98.6085},
	{"Surat Thani", 9.1382, 99.3215},
	{"Phang Nga", 8.4510, 98.5150},
	{"Phuket", 7.8804, 98.3923},
	{"Krabi", 8.0863, 98.9063},
	{"Nakhon Si Thammarat", 8.4304, 99.9631},
	{"Trang", 7.5563, 99.6114},
	{"Phatthalung", 7.6167, 100.0740},
	{"Satun", 6.6238, 100.0674},
	{"Songkhla", 7.1897, 100.5954},
	{"Pattani", 6.8692, 101.2550},
	{"Yala", 6.5413, 101.2803},
	{"Narathiwat", 6.4254, 101.8253},
}
