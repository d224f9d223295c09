package openai

const extractSystemPrompt = "당신은 영화 검색 파라미터 변환 전문가입니다. 자연어 입력을 구조화된 검색 파라미터로 변환합니다."

// extractUserPrompt takes the user text as its only argument.
const extractUserPrompt = `
다음 자연어 검색어를 영화 검색에 적합한 구조화된 파라미터로 변환해주세요.

사용자 입력: "%s"

다음 JSON 형식으로 응답해주세요:
{
  "query": "검색할 키워드",
  "genre": "장르 (액션, 코미디, 드라마, 공포, SF, 로맨스, 스릴러, 범죄, 판타지, 모험, 애니메이션, 다큐멘터리, 가족, 역사, 음악, 미스터리, 전쟁, 서부 중 하나)",
  "year": 연도 (숫자),
  "minRating": 최소 평점 (1-10),
  "sortBy": "정렬 기준 (popularity, rating, release_date 중 하나)",
  "type": "검색 유형 (movie, tv, person 중 하나)",
  "country": "국가 (한국, 미국, 일본, 중국 등)",
  "keywords": ["추가 검색 키워드 배열"],
  "season": "계절 (봄, 여름, 가을, 겨울 중 하나)",
  "setting": "배경 설정 (자연, 도시, 시골, 학교, 직장 등)"
}

규칙:
- 장르는 한국어로 입력된 경우 영어로 변환
- 연도가 언급되지 않으면 null
- 평점이 언급되지 않으면 null
- 정렬 기준이 명시되지 않으면 "popularity"
- 기본적으로 "movie" 타입으로 설정
- TV 프로그램이나 드라마가 언급되면 "tv"
- 배우나 감독이 언급되면 "person"

예시:
- "좀비 영화 추천해줘" → {"query": "zombie", "genre": "Horror", "type": "movie", "sortBy": "popularity"}
- "2023년 액션 영화" → {"query": "action", "genre": "Action", "year": 2023, "type": "movie"}
- "평점 높은 로맨스 영화" → {"query": "romance", "genre": "Romance", "minRating": 7, "sortBy": "rating", "type": "movie"}
- "톰 크루즈" → {"query": "Tom Cruise", "type": "person"}
- "한국 드라마" → {"query": "korean", "type": "tv", "country": "한국"}
- "한국 영화" → {"query": "korean", "type": "movie", "country": "한국"}
- "가을 배경이 나온 한국 영화" → {"query": "autumn korean", "type": "movie", "country": "한국", "season": "가을", "keywords": ["autumn", "fall"], "setting": "자연"}
- "봄에 나온 로맨스 영화" → {"query": "spring romance", "genre": "Romance", "season": "봄", "keywords": ["spring", "romance"]}
- "학교 배경의 한국 영화" → {"query": "school korean", "type": "movie", "country": "한국", "setting": "학교", "keywords": ["school", "student"]}

응답은 반드시 JSON 형식만 반환하세요.
`

const narrateSystemPrompt = "당신은 친근하고 전문적인 영화 추천 전문가입니다."

// narrateUserPrompt takes the user text and the rendered listing.
const narrateUserPrompt = `
사용자가 "%s"라고 검색했을 때 다음 영화들을 추천받았습니다:

%s

이 영화들을 바탕으로 자연스럽고 친근한 톤으로 추천 설명을 작성해주세요.
- 왜 이 영화들이 사용자의 검색어에 적합한지 설명
- 각 영화의 특징을 간략히 소개
- 추천 이유 포함
- 한국어로 작성
- 200자 이내로 작성

응답 형식: 추천 설명 텍스트만 반환 (JSON 형식 아님)
`
