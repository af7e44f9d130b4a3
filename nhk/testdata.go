package nhk

// Fixture documents shared across test files.
var (
	TestConfigXML = `<?xml version="1.0" encoding="UTF-8"?>
<radiru_config>
  <info>test</info>
  <url_program_noa>//api.nhk.example/r5/pg/now/4/{area}/netradio.json</url_program_noa>
  <url_program_day>//api.nhk.example/r5/pg/day/4/{area}/netradio.json</url_program_day>
  <stream_url>
    <data>
      <areajp>東京</areajp>
      <area>tokyo</area>
      <apikey>700</apikey>
      <areakey>130</areakey>
      <r1hls>https://radio.example.com/tokyo/r1/master.m3u8</r1hls>
      <r2hls>https://radio.example.com/tokyo/r2/master.m3u8</r2hls>
      <fmhls>https://radio.example.com/tokyo/fm/master.m3u8</fmhls>
    </data>
    <data>
      <areajp>大阪</areajp>
      <area>osaka</area>
      <apikey>700</apikey>
      <areakey>400</areakey>
      <r1hls>https://radio.example.com/osaka/r1/master.m3u8</r1hls>
      <r2hls>https://radio.example.com/osaka/r2/master.m3u8</r2hls>
      <fmhls>https://radio.example.com/osaka/fm/master.m3u8</fmhls>
    </data>
  </stream_url>
</radiru_config>`

	TestProgramJSON = `{
  "r1": {
    "present": {
      "id": "ev1",
      "name": "ニュース",
      "startDate": "2025-11-25T23:00:00+09:00",
      "endDate": "2025-11-25T23:30:00+09:00",
      "about": {
        "id": "ep1",
        "name": "夜のニュース",
        "description": "今日の主な動き"
      }
    }
  },
  "r2": {},
  "r3": {
    "present": {
      "id": "ev2",
      "name": "クラシックの迷宮",
      "startDate": "2025-11-25T21:10:00+09:00",
      "endDate": "2025-11-26T00:00:00+09:00"
    }
  }
}`
)
